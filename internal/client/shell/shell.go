// Package shell implements the interactive studioctl admin console.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/fusedlens/studio/internal/client/storage"
	"github.com/fusedlens/studio/internal/models"
)

// API is the subset of the studio client used by the console.
type API interface {
	Contacts(ctx context.Context) ([]models.Contact, error)
	SetContactStatus(ctx context.Context, id, status string) (models.Contact, error)
	Comments(ctx context.Context) ([]models.Comment, error)
	SetApproved(ctx context.Context, id string, approved bool) (models.Comment, error)
	DeleteComment(ctx context.Context, id string) error
	Photos(ctx context.Context, category string) ([]models.Photo, error)
	Reorder(ctx context.Context, ids []string) ([]models.Photo, error)
	ChangePassword(ctx context.Context, current, next string) error
}

const helpText = `Available commands:
  contacts                 list contact submissions
  read <id>                show a submission and mark it read
  comments                 list photo comments with moderation state
  approve <id>             publish a comment
  reject <id>              hide a comment
  delete-comment <id>      delete a comment
  photos [category]        list photos in display order
  reorder <id1> <id2> ...  move the listed photos to the front, in order
  password                 change the admin password
  exit                     leave the shell`

// Run reads commands from in until exit, EOF or ctx is cancelled. A
// cancelled ctx ends Run even while it is waiting for input. Command
// failures are printed and do not stop the loop; only read errors on in
// are returned.
func Run(ctx context.Context, in io.Reader, out io.Writer, api API) error {
	scanner := storage.NewLineReader(ctx, in)
	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "studio> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if ctx.Err() != nil {
				return nil
			}
			return scanner.Err()
		}
		args := strings.Fields(scanner.Text())
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			fmt.Fprintln(out, "Bye")
			return nil
		}
		if err := dispatch(ctx, scanner, out, api, args); err != nil {
			if ctx.Err() != nil {
				fmt.Fprintln(out)
				return nil
			}
			fmt.Fprintf(out, "Error: %v\n", err)
		}
	}
}

func dispatch(ctx context.Context, scanner storage.LineScanner, out io.Writer, api API, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(out, helpText)
	case "contacts":
		contacts, err := api.Contacts(ctx)
		if err != nil {
			return err
		}
		printContacts(out, contacts)
	case "read":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: read <id>")
			return nil
		}
		return readContact(ctx, out, api, args[1])
	case "comments":
		comments, err := api.Comments(ctx)
		if err != nil {
			return err
		}
		printComments(out, comments)
	case "approve", "reject":
		if len(args) < 2 {
			fmt.Fprintf(out, "Usage: %s <id>\n", args[0])
			return nil
		}
		c, err := api.SetApproved(ctx, args[1], args[0] == "approve")
		if err != nil {
			return err
		}
		if c.Approved {
			fmt.Fprintf(out, "Comment %s approved\n", c.ID)
		} else {
			fmt.Fprintf(out, "Comment %s hidden\n", c.ID)
		}
	case "delete-comment":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: delete-comment <id>")
			return nil
		}
		if err := api.DeleteComment(ctx, args[1]); err != nil {
			return err
		}
		fmt.Fprintln(out, "Comment deleted")
	case "photos":
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		photos, err := api.Photos(ctx, category)
		if err != nil {
			return err
		}
		printPhotos(out, photos)
	case "reorder":
		if len(args) < 2 {
			fmt.Fprintln(out, "Usage: reorder <id1> <id2> ...")
			return nil
		}
		photos, err := api.Reorder(ctx, args[1:])
		if err != nil {
			return err
		}
		printPhotos(out, photos)
	case "password":
		current, next, err := storage.PromptPasswordChange(scanner, out)
		if err != nil {
			return err
		}
		if err := api.ChangePassword(ctx, current, next); err != nil {
			return err
		}
		fmt.Fprintln(out, "Password updated")
	default:
		fmt.Fprintln(out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func readContact(ctx context.Context, out io.Writer, api API, id string) error {
	contacts, err := api.Contacts(ctx)
	if err != nil {
		return err
	}
	for _, c := range contacts {
		if c.ID != id {
			continue
		}
		if c.Status == models.ContactUnread {
			if c, err = api.SetContactStatus(ctx, id, models.ContactRead); err != nil {
				return err
			}
		}
		b, _ := json.MarshalIndent(c, "", "  ")
		fmt.Fprintln(out, string(b))
		return nil
	}
	fmt.Fprintln(out, "Contact not found")
	return nil
}

func printContacts(out io.Writer, contacts []models.Contact) {
	if len(contacts) == 0 {
		fmt.Fprintln(out, "No contact submissions")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tNAME\tEMAIL\tSERVICE\tSUBMITTED")
	for _, c := range contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID, c.Status, c.Name, c.Email, c.Service, c.SubmittedAt.Format("2006-01-02 15:04"))
	}
	tw.Flush()
}

func printComments(out io.Writer, comments []models.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPHOTO\tAPPROVED\tNAME\tCOMMENT")
	for _, c := range comments {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", c.ID, c.PhotoID, c.Approved, c.Name, truncate(c.Comment, 60))
	}
	tw.Flush()
}

func printPhotos(out io.Writer, photos []models.Photo) {
	if len(photos) == 0 {
		fmt.Fprintln(out, "No photos")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tID\tCATEGORY\tTITLE")
	for _, p := range photos {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.Order, p.ID, p.Category, p.Title)
	}
	tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
