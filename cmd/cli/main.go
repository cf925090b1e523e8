// Command cli is a terminal client for the accounts API. The session is
// persisted under the user config dir, so tokens survive between runs and
// expired access tokens are renewed transparently.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/hexanode/accounts/internal/client"
	"github.com/hexanode/accounts/internal/dto"
	"golang.org/x/term"
)

const usage = `Usage: cli [-server URL] <command>

Commands:
  register    create an account and sign in
  login       sign in with email and password
  whoami      show the signed-in user's profile
  connections show recent login history
  logout      revoke the session and clear stored tokens
`

func main() {
	serverURL := flag.String("server", envOr("ACCOUNTS_SERVER", "http://localhost:3000"), "accounts API base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	sessionPath, err := client.DefaultSessionPath()
	if err != nil {
		fatal("resolving session path: %v", err)
	}
	store := client.NewFileStore(sessionPath)
	api := client.New(*serverURL, store)
	guard := client.NewGuard(store)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd := flag.Arg(0); cmd {
	case "register":
		err = register(ctx, api)
	case "login":
		err = login(ctx, api)
	case "whoami":
		err = withAuth(guard, cmd, func() error { return whoami(ctx, api) })
	case "connections":
		err = withAuth(guard, cmd, func() error { return connections(ctx, api) })
	case "logout":
		err = api.Logout(ctx)
		if err == nil {
			fmt.Println("Signed out.")
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		fatal("%v", err)
	}
}

// withAuth runs fn only when the guard accepts the stored session.
func withAuth(guard *client.Guard, command string, fn func() error) error {
	if !guard.Allow(command) {
		return fmt.Errorf("not signed in, run: cli login")
	}
	return fn()
}

func login(ctx context.Context, api *client.Client) error {
	email := prompt("Email: ")
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	session, err := api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s %s <%s>\n", session.User.FirstName, session.User.LastName, session.User.Email)
	return nil
}

func register(ctx context.Context, api *client.Client) error {
	req := &dto.RegisterRequest{
		FirstName: prompt("First name: "),
		LastName:  prompt("Last name: "),
		Email:     prompt("Email: "),
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	req.Password = password

	session, err := api.Register(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s\n", session.User.Email)
	return nil
}

func whoami(ctx context.Context, api *client.Client) error {
	user, err := api.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	if user.Location != "" {
		fmt.Printf("Location: %s\n", user.Location)
	}
	if user.Settings != nil {
		fmt.Printf("Timezone: %s, date format: %s\n", user.Settings.Timezone, user.Settings.DateFormat)
	}
	return nil
}

func connections(ctx context.Context, api *client.Client) error {
	conns, err := api.Connections(ctx, 1, 20)
	if err != nil {
		return err
	}

	if len(conns) == 0 {
		fmt.Println("No connection history.")
		return nil
	}

	for _, c := range conns {
		fmt.Printf("%s  %-7s  %-20s  %s\n",
			c.Date.Format("2006-01-02 15:04"), c.Status, c.Device, c.IPAddress)
	}
	return nil
}

func prompt(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
