package chatclient

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const serverName = "Server"

// Render writes one broadcast message to w. Notes are yellow, the server's
// jokes magenta, and member listings are drawn as a table.
func Render(w io.Writer, data []byte) error {
	var msg inbound
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	switch msg.Type {
	case "note":
		var members []string
		if err := json.Unmarshal(msg.Text, &members); err == nil {
			return renderMembers(w, members)
		}
		var text string
		if err := json.Unmarshal(msg.Text, &text); err != nil {
			return fmt.Errorf("decode note text: %w", err)
		}
		_, err := fmt.Fprintln(w, color.Yellow.Sprintf("* %s", text))
		return err

	case "chat":
		var text string
		if err := json.Unmarshal(msg.Text, &text); err != nil {
			return fmt.Errorf("decode chat text: %w", err)
		}
		name := "anonymous"
		if msg.Name != nil {
			name = *msg.Name
		}
		style := color.Cyan
		if name == serverName {
			style = color.Magenta
		}
		_, err := fmt.Fprintf(w, "%s: %s\n", style.Sprint(name), text)
		return err

	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

func renderMembers(w io.Writer, members []string) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Member"})
	for i, member := range members {
		table.Append([]string{fmt.Sprint(i + 1), member})
	}
	table.Render()
	return nil
}
