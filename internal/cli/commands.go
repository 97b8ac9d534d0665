package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

func newLoadCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Replace the stored data with a fresh copy of the upstream source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := client.do(http.MethodGet, "/load", nil); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "load complete")
			return nil
		},
	}
}

func newGetCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Short:   "Show a user with its posts and comments",
		Example: "  swift get 1",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := client.do(http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if err := json.Indent(&pretty, resp.Body, "", "  "); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			pretty.WriteByte('\n')
			_, err = pretty.WriteTo(cmd.OutOrStdout())
			return err
		},
	}
}

func newDeleteCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user together with its posts and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			resp, err := client.do(http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))
			return nil
		},
	}
}

func newClearCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every user, post and comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resp, err := client.do(http.MethodDelete, "/users", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(resp.Body))
			return nil
		},
	}
}

func newCreateCmd(client *apiClient) *cobra.Command {
	var (
		file     string
		id       int64
		name     string
		username string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a single user",
		Example: `  swift create --id 101 --name Ann --username ann1 --email ann@example.com
  swift create --file user.json
  cat user.json | swift create --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var payload []byte

			switch {
			case file != "":
				data, err := readPayload(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
				payload = data
			case cmd.Flags().Changed("id"):
				data, err := json.Marshal(map[string]interface{}{
					"id":       id,
					"name":     name,
					"username": username,
					"email":    email,
				})
				if err != nil {
					return err
				}
				payload = data
			default:
				return fmt.Errorf("either --file or --id is required")
			}

			resp, err := client.do(http.MethodPut, "/users", bytes.NewReader(payload))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, string(resp.Body))
			if link := resp.Header.Get("Link"); link != "" {
				_, _ = fmt.Fprintf(out, "location: %s\n", link)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON user document, - for stdin")
	cmd.Flags().Int64Var(&id, "id", 0, "User id")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&username, "username", "", "Username")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.MarkFlagsMutuallyExclusive("file", "id")

	return cmd
}

func readPayload(stdin io.Reader, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	return data, nil
}
