// Package smssvc dispatches SMS messages. The console service stands in for
// a telco gateway during demos; the mock records messages for assertions.
package smssvc

import (
	"log"
	"sync"

	"github.com/campuspay/campuspay/core"
)

var (
	SentMessages = make([]core.SMSMessage, 0)
	mu           sync.Mutex
)

type consoleService struct {
	senderID      string
	disableOutput bool
}

var _ core.SMSService = (*consoleService)(nil)

func NewConsoleService(conf *core.Config) core.SMSService {
	return &consoleService{senderID: conf.AppName}
}

func (svc consoleService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		go svc.sendMessage(msg)
	}
}

func (svc consoleService) sendMessage(msg *core.SMSMessage) {
	if msg.To == "" || msg.Body == "" {
		return
	}
	if !svc.disableOutput {
		log.Printf("SMS from %s to %s: %s\n", svc.senderID, msg.To, msg.Body)
	}
	mu.Lock()
	SentMessages = append(SentMessages, *msg)
	mu.Unlock()
}

type consoleServiceMock struct {
	consoleService
}

func NewConsoleServiceMock(conf *core.Config) core.SMSService {
	return &consoleServiceMock{
		consoleService: consoleService{senderID: conf.AppName, disableOutput: true},
	}
}

func (svc *consoleServiceMock) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		// run synchronously
		svc.sendMessage(msg)
	}
}
