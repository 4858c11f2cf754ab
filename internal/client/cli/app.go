// Package cli implements the plantkeeper command-line client on cobra.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/plantkeeper/internal/client/api"
	"github.com/dmitrijs2005/plantkeeper/internal/client/config"
	"github.com/dmitrijs2005/plantkeeper/internal/common"
	"github.com/dmitrijs2005/plantkeeper/internal/filex"
)

type App struct {
	cfg *config.Config
	in  *bufio.Reader
	out io.Writer
}

// NewRootCommand builds the command tree. cfg is updated in place by the
// persistent flags before any command runs.
func NewRootCommand(cfg *config.Config, in io.Reader, out io.Writer) *cobra.Command {
	a := &App{cfg: cfg, in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:           "plantkeeper",
		Short:         "Manage your plants and smart pots",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	cfg.BindFlags(root)

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.linkCommand(),
		a.unlinkCommand(),
		a.plantCommand(),
		a.potCommand(),
	)
	return root
}

// Execute runs root and prints a readable error to errOut. It returns the
// process exit code.
func Execute(ctx context.Context, root *cobra.Command, errOut io.Writer) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(errOut, "Error:", Describe(err))
		return 1
	}
	return 0
}

// Describe turns server errors into messages for people.
func Describe(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "wrong email or password"
	case errors.Is(err, common.ErrorUnauthorized):
		return "not logged in or session expired; run \"plantkeeper login\""
	case errors.Is(err, common.ErrUserAlreadyExists):
		return "a user with this email already exists"
	case errors.Is(err, common.ErrAlreadyLinked):
		return "the plant or the pot is already linked"
	case errors.Is(err, common.ErrorNotFound):
		return "not found"
	default:
		return err.Error()
	}
}

func (a *App) httpClient() *http.Client {
	return &http.Client{Timeout: a.cfg.Timeout}
}

// anonymous is used for register and login.
func (a *App) anonymous() *api.Client {
	return api.New(a.cfg.ServerURL, "", a.httpClient())
}

// authenticated reads the saved token.
func (a *App) authenticated() (*api.Client, error) {
	token, err := filex.ReadTrimmed(a.cfg.TokenFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return nil, common.ErrorUnauthorized
	}
	return api.New(a.cfg.ServerURL, token, a.httpClient()), nil
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}
