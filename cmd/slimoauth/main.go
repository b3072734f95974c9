// Command slimoauth runs a demo server showing the oauth middleware.
//
// It wraps a trivial application handler with the interception layer:
//
//	slimoauth --auth-config providers.yaml --listen :8080
//
// Visiting /auth/github?return=http://localhost:8080/ starts a login,
// every other path reports the identity of the acting user.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/sduck/slim-oauth/lib/khttp/krequestlog"
	"github.com/sduck/slim-oauth/lib/logger"
	"github.com/sduck/slim-oauth/lib/oauth"
	"github.com/sduck/slim-oauth/lib/oauth/ogithub"
	"github.com/sduck/slim-oauth/lib/session"
	"github.com/spf13/cobra"
)

func main() {
	command := New()
	if err := command.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func New() *cobra.Command {
	var listen string
	var redisAddr string
	var githubIdentity bool

	root := &cobra.Command{
		Use:           "slimoauth",
		Long:          `slimoauth - a demo server for the slim-oauth middleware`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example:       `  $ slimoauth --auth-config providers.yaml`,
	}

	authFlags := oauth.DefaultFlags().Register(root.Flags(), "auth-")
	logFlags := krequestlog.DefaultFlags().Register(root.Flags(), "http-")
	root.Flags().StringVar(&listen, "listen", ":8080", "Address to listen on")
	root.Flags().StringVar(&redisAddr, "redis", "", "Address of a redis server for session storage (empty uses in process sessions)")
	root.Flags().BoolVar(&githubIdentity, "github-identity", false, "Resolve user identities through the GitHub API after login")

	root.RunE = func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogrus()

		mods := []oauth.Modifier{
			oauth.FromFlags(authFlags),
			oauth.WithLogger(log),
		}

		if redisAddr != "" {
			sessions, err := session.NewRedis(redisAddr)
			if err != nil {
				return err
			}
			defer sessions.Close()
			mods = append(mods, oauth.WithSessions(sessions))
		}
		if githubIdentity {
			mods = append(mods, oauth.WithVerifiers(ogithub.New()))
		}

		mw, err := oauth.New(oauth.NewMemoryUsers(), mods...)
		if err != nil {
			return err
		}

		handler := mw.Handler(http.HandlerFunc(dashboard))
		handler = krequestlog.NewHandler(handler, krequestlog.FromFlags(logFlags), krequestlog.WithLogger(log))

		log.Infof("listening on %s", listen)
		return http.ListenAndServe(listen, handler)
	}

	return root
}

func dashboard(w http.ResponseWriter, r *http.Request) {
	user := oauth.GetUser(r.Context())
	if user == nil || user.Token == "" {
		fmt.Fprintln(w, "hello, anonymous - visit /auth/{provider}?return=... to log in")
		return
	}
	fmt.Fprintf(w, "hello, %s - authenticated\n", user.Username)
}
