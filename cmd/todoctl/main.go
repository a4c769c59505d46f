// Command todoctl talks to the todo worker from a terminal.
package main

import (
	"os"

	client "github.com/jalexanderII/zero-todo/app/clients"
	"github.com/jalexanderII/zero-todo/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiURL   string
	apiToken string
	verbose  bool

	l = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:           "todoctl",
	Short:         "Manage todos through the todo API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			l.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	_ = config.LoadENV()
	cc := config.LoadClient()

	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", cc.APIURL, "base URL of the todo API (TODO_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", cc.Token, "bearer token sent with every request (TODO_API_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests")
}

// newClient builds the API client from the persistent flags.
func newClient() *client.APIClient {
	c := client.NewAPIClient(apiURL, l)
	if apiToken != "" {
		c.SetAuthToken(apiToken)
	}
	return c
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fail(err.Error())
		os.Exit(1)
	}
}
