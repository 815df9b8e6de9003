// Command passvault is a terminal front end for the PassVault API. It keeps
// the session token in a mode-0600 file under the user's home directory so
// consecutive invocations stay logged in until the token expires; passwords
// are prompted without echo and never written anywhere.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/edgarsv/passvault/internal/client"
)

const defaultAddr = "http://localhost:8080"

func main() {
	_ = godotenv.Load()
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	addr := os.Getenv("PASSVAULT_ADDR")
	if addr == "" {
		addr = defaultAddr
	}
	sess := client.NewSession(addr, nil)
	if tok, err := loadToken(); err == nil && tok != "" {
		sess.Resume(tok)
	}

	ctx := context.Background()
	var err error
	switch cmd := os.Args[1]; cmd {
	case "signup", "login":
		err = runAuth(ctx, sess, cmd, os.Args[2:])
	case "list":
		err = runList(ctx, sess)
	case "add":
		err = runAdd(ctx, sess, os.Args[2:])
	case "delete":
		err = runDelete(ctx, sess, os.Args[2:])
	case "logout":
		sess.Logout()
		err = clearToken()
		fmt.Println("logged out")
	default:
		usage()
		os.Exit(2)
	}

	if errors.Is(err, client.ErrSessionExpired) || errors.Is(err, client.ErrNotAuthenticated) {
		_ = clearToken()
		fmt.Fprintln(os.Stderr, "session expired, please login again")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: passvault <command> [args]

commands:
  signup <username>   create an account and log in
  login  <username>   log in with an existing account
  list                print all stored records, most recent first
  add                 store a record (-type -name -id [-notes], secret prompted)
  delete <record-id>  delete one of your records
  logout              forget the stored session token

PASSVAULT_ADDR overrides the server address (default `+defaultAddr+`).`)
}

func runAuth(ctx context.Context, sess *client.Session, cmd string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: passvault %s <username>", cmd)
	}
	fmt.Print("password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	if cmd == "signup" {
		err = sess.Signup(ctx, args[0], string(pw))
	} else {
		err = sess.Login(ctx, args[0], string(pw))
	}
	if err != nil {
		return err
	}
	if err := saveToken(sess.Token()); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", sess.User())
	return nil
}

func runList(ctx context.Context, sess *client.Session) error {
	recs, err := sess.ListRecords(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("no records")
		return nil
	}
	for _, r := range recs {
		fmt.Printf("%s  %-12s %-20s id=%s", r.ID, r.Type, r.Name, r.IDNumber)
		if r.Notes != "" {
			fmt.Printf("  (%s)", r.Notes)
		}
		fmt.Println()
	}
	return nil
}

func runAdd(ctx context.Context, sess *client.Session, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	typ := fs.String("type", "", "record type, e.g. Account")
	name := fs.String("name", "", "record name")
	idNum := fs.String("id", "", "id number")
	notes := fs.String("notes", "", "optional notes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*typ) == "" || strings.TrimSpace(*name) == "" || strings.TrimSpace(*idNum) == "" {
		return errors.New("usage: passvault add -type <type> -name <name> -id <id-number> [-notes <notes>]")
	}

	fmt.Print("secret (empty allowed): ")
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	rec, err := sess.CreateRecord(ctx, client.RecordInput{
		Type:     *typ,
		Name:     *name,
		IDNumber: *idNum,
		Secret:   string(secret),
		Notes:    *notes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("stored %s\n", rec.ID)
	return nil
}

func runDelete(ctx context.Context, sess *client.Session, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: passvault delete <record-id>")
	}
	if err := sess.DeleteRecord(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("deleted")
	return nil
}

func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".passvault_session"), nil
}

func loadToken() (string, error) {
	p, err := tokenPath()
	if err != nil {
		return "", err
	}
	bs, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(bs)), nil
}

func saveToken(token string) error {
	p, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token+"\n"), 0o600)
}

func clearToken() error {
	p, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
