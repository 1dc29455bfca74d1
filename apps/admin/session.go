package main

import (
	"context"
	"fmt"
)

// showSession prints the persisted session for the given actor type.
func (cli *commandLine) showSession(actor string) error {
	switch actor {
	case actorStudent:
		usr, ok := cli.studentSession.Current()
		if !ok {
			fmt.Println("no student session")
			return nil
		}
		verified := "unverified"
		if usr.IsMobileVerified {
			verified = "verified"
		}
		fmt.Printf("%s <%s> (%s) - %s, balance %d\n", usr.Name, usr.Email, usr.StudentID, verified, usr.Balance)
	case actorAdmin:
		adm, ok := cli.adminSession.Current()
		if !ok {
			fmt.Println("no admin session")
			return nil
		}
		fmt.Printf("%s <%s> - %s, %s\n", adm.Name, adm.Email, adm.Role, adm.Department)
	default:
		return errUnknownActor
	}
	return nil
}

// login authenticates the given actor and persists the session.
func (cli *commandLine) login(actor, email, pwd string) error {
	ctx := context.Background()

	switch actor {
	case actorStudent:
		if err := cli.studentSession.Login(ctx, email, pwd); err != nil {
			return err
		}
	case actorAdmin:
		if err := cli.adminSession.Login(ctx, email, pwd); err != nil {
			return err
		}
	default:
		return errUnknownActor
	}
	fmt.Println("logged in")
	return cli.showSession(actor)
}

// logout clears the given actor's persisted session. Idempotent.
func (cli *commandLine) logout(actor string) error {
	switch actor {
	case actorStudent:
		cli.studentSession.Logout()
	case actorAdmin:
		cli.adminSession.Logout()
	default:
		return errUnknownActor
	}
	fmt.Println("logged out")
	return nil
}
