package main

import (
	"context"
	"fmt"

	"github.com/campuspay/campuspay/core/student"
)

// verify walks the logged-in student through the mobile-account verification
// flow: request a code for the given number, then prompt for it.
func (cli *commandLine) verify(mobileNumber string) error {
	if _, ok := cli.studentSession.Current(); !ok {
		return student.ErrNotAuthenticated
	}

	ctx := context.Background()
	flow := student.NewVerification(cli.studentSession)
	if flow.State() == student.StateVerified {
		fmt.Println("mobile account already verified")
		return nil
	}

	if err := flow.SendCode(ctx, mobileNumber); err != nil {
		return err
	}

	typed, err := readLineFunc("Enter the 6-digit code:")
	if err != nil {
		return err
	}
	flow.InputCode(typed)
	if !flow.CanConfirm() {
		return student.ErrInvalidCode
	}
	if err := flow.Confirm(ctx); err != nil {
		return err
	}

	fmt.Println("mobile account verified")
	return cli.showSession(actorStudent)
}
