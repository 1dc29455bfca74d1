package main

import (
	"testing"

	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/student"
	inmemstore "github.com/campuspay/campuspay/storage/session/inmem"
	testutil "github.com/campuspay/campuspay/tests"
)

func setup(t *testing.T) *commandLine {
	t.Helper()

	conf := testutil.NewConfig()
	core.UniEmailDomain = conf.Demo.EmailDomain
	store := inmemstore.Open()
	provider := student.NewDemoProvider(conf, nil, nil)

	return &commandLine{
		studentSession: student.NewSession(provider, store, nil),
		adminSession:   admin.NewSession(admin.NewDemoDirectory(conf), store, nil),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_login(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"login"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"login", "-email", testutil.DemoEmail}, wantErr: errHelp},
		{name: "unknown actor", args: []string{"login", "-actor", "teacher", "-email", testutil.DemoEmail}, extra: extra{pwd: "lol"}, wantErr: errUnknownActor},
		{name: "wrong password", args: []string{"login", "-email", testutil.DemoEmail}, extra: extra{pwd: "wrong"}, wantErr: student.ErrInvalidCredentials},
		{name: "student login", args: []string{"login", "-email", testutil.DemoEmail}, extra: extra{pwd: testutil.DemoPassword}},
		{name: "admin login", args: []string{"login", "-actor", "admin", "-email", "admin@university.edu.ph"}, extra: extra{pwd: "admin123"}},
		{name: "admin wrong password", args: []string{"login", "-actor", "admin", "-email", "admin@university.edu.ph"}, extra: extra{pwd: "wrong"}, wantErr: admin.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// both sessions ended up authenticated
	if _, ok := cli.studentSession.Current(); !ok {
		t.Error("student session is anonymous after login")
	}
	if _, ok := cli.adminSession.Current(); !ok {
		t.Error("admin session is anonymous after login")
	}
}

func Test_commandLine_logoutAndSession(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte(testutil.DemoPassword), nil }
	if err := cli.run([]string{"admin", "login", "-email", testutil.DemoEmail}); err != nil {
		t.Fatalf("cli.run(login) failed: %v", err)
	}

	tests := []cliTest{
		{name: "show student session", args: []string{"session"}},
		{name: "show admin session (anonymous)", args: []string{"session", "-actor", "admin"}},
		{name: "unknown actor", args: []string{"session", "-actor", "teacher"}, wantErr: errUnknownActor},
		{name: "logout", args: []string{"logout"}},
		{name: "logout is idempotent", args: []string{"logout"}},
		{name: "logout unknown actor", args: []string{"logout", "-actor", "teacher"}, wantErr: errUnknownActor},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, ok := cli.studentSession.Current(); ok {
		t.Error("student session survived logout")
	}
}

func Test_commandLine_verify(t *testing.T) {
	cli := setup(t)

	// not logged in
	readLineFunc = func(prompt string) (string, error) { return testutil.DemoCode, nil }
	if err := cli.run([]string{"admin", "verify", "-mobile", "09170000000"}); err != student.ErrNotAuthenticated {
		t.Fatalf("cli.run(verify) error = %v, want %v", err, student.ErrNotAuthenticated)
	}

	testutil.RegisterStudent(t, cli.studentSession, "test.student@university.edu.ph")

	type extra struct {
		typed string
	}
	tests := []cliTest{
		{name: "no args", args: []string{"verify"}, wantErr: errHelp},
		{name: "partial code", args: []string{"verify", "-mobile", "09170000000"}, extra: extra{typed: "123"}, wantErr: student.ErrInvalidCode},
		{name: "wrong code", args: []string{"verify", "-mobile", "09170000000"}, extra: extra{typed: "654321"}, wantErr: student.ErrInvalidCode},
		{name: "verified", args: []string{"verify", "-mobile", "09170000000"}, extra: extra{typed: testutil.DemoCode}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readLineFunc = func(prompt string) (string, error) {
			if extra, ok := tt.extra.(extra); ok {
				return extra.typed, nil
			}
			return "", nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, _ := cli.studentSession.Current()
	if !usr.IsMobileVerified {
		t.Error("verify did not flip the verified flag")
	}
}
