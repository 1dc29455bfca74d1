package core

type (
	// SMSMessage is a short text message addressed to a mobile number.
	SMSMessage struct {
		To   string
		Body string
	}

	// SMSService is any service that can dispatch SMS messages, notably
	// one-time verification codes.
	SMSService interface {
		// SendMessages sends messages concurrently
		SendMessages(messages ...*SMSMessage)
	}
)
