package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/student"
)

const (
	actorStudent = "student"
	actorAdmin   = "admin"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	readLineFunc     = readLine          // mockable

	errHelp         = errors.New("help provided")
	errUnknownActor = errors.New("actor must be one of: student, admin")
)

type commandLine struct {
	studentSession *student.Session
	adminSession   *admin.Session
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  session -actor student|admin                 - show the persisted session")
	fmt.Println("  login -actor student|admin -email EMAIL      - log in; the password is prompted next")
	fmt.Println("  logout -actor student|admin                  - log out and clear the persisted session")
	fmt.Println("  verify -mobile NUMBER                        - verify the student's mobile account; the code is prompted next")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	sessionCmd := flag.NewFlagSet("session", flag.ExitOnError)
	sessionActor := sessionCmd.String("actor", actorStudent, "The actor type: student or admin.")

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginActor := loginCmd.String("actor", actorStudent, "The actor type: student or admin.")
	loginEmail := loginCmd.String("email", "", "The account's email. The password will be prompted next.")

	logoutCmd := flag.NewFlagSet("logout", flag.ExitOnError)
	logoutActor := logoutCmd.String("actor", actorStudent, "The actor type: student or admin.")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyMobile := verifyCmd.String("mobile", "", "The mobile account number. The code will be prompted next.")

	switch args[1] {
	case "session":
		if err := sessionCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.showSession(*sessionActor)
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginEmail == "" {
			loginCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginActor, *loginEmail, string(pwd))
	case "logout":
		if err := logoutCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.logout(*logoutActor)
	case "verify":
		if err := verifyCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *verifyMobile == "" {
			verifyCmd.Usage()
			return errHelp
		}
		return cli.verify(*verifyMobile)
	default:
		cli.printUsage()
		return errHelp
	}
}

func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
