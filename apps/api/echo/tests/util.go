package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/campuspay/campuspay/apps/api/echo"
	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/registry"
	"github.com/campuspay/campuspay/core/student"
	"github.com/campuspay/campuspay/core/wallet"
	emailsvc "github.com/campuspay/campuspay/services/email"
	smssvc "github.com/campuspay/campuspay/services/sms"
	dummydb "github.com/campuspay/campuspay/storage/database/dummy"
	inmemstore "github.com/campuspay/campuspay/storage/session/inmem"
	testutil "github.com/campuspay/campuspay/tests"
)

type testApp struct {
	server         *Server
	studentSession *student.Session
	adminSession   *admin.Session
}

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := testutil.NewConfig()
	core.UniEmailDomain = conf.Demo.EmailDomain

	// set up DB & session store
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	db.Seed()
	store := inmemstore.Open()

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	smsSvc := smssvc.NewConsoleServiceMock(conf)
	provider := student.NewDemoProvider(conf, smsSvc, mailSvc)

	studentSession := student.NewSession(provider, store, testutil.NopLogger{})
	adminSession := admin.NewSession(admin.NewDemoDirectory(conf), store, testutil.NopLogger{})
	walletSvc := wallet.NewService(conf, dummydb.NewWalletRepository(db), mailSvc)
	registrySvc := registry.NewService(dummydb.NewRegistryRepository(db))

	// set up server
	server := NewServer(
		ServerDeps{
			Conf:           conf,
			Logger:         testutil.NopLogger{},
			StudentSession: studentSession,
			AdminSession:   adminSession,
			WalletSvc:      walletSvc,
			RegistrySvc:    registrySvc,
		},
	)
	return &testApp{
		server:         server,
		studentSession: studentSession,
		adminSession:   adminSession,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
