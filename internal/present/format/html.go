package format

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/mithrel/chatextract/internal/render"
	"github.com/mithrel/chatextract/internal/transcript"
	"github.com/mithrel/chatextract/internal/util"
	"github.com/mithrel/chatextract/pkg/api"
)

// HTMLOptions configures the assembled document.
type HTMLOptions struct {
	// Title is the document title and page heading. Default: "Chat Export".
	Title    string
	Strategy transcript.Strategy
}

// HTMLDocument assembles a standalone HTML page: a summary, a table of
// contents and one section per conversation.
type HTMLDocument struct {
	opts HTMLOptions
}

func NewHTMLDocument(opts HTMLOptions) *HTMLDocument {
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = "Chat Export"
	}
	if opts.Strategy == "" {
		opts.Strategy = transcript.Timeline
	}
	return &HTMLDocument{opts: opts}
}

// Render builds the document for convs in the order given.
func (d *HTMLDocument) Render(convs []api.Conversation) string {
	var sb strings.Builder
	title := html.EscapeString(d.opts.Title)

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", title))
	sb.WriteString("    <meta name=\"generator\" content=\"chatextract\">\n")
	sb.WriteString(documentCSS)
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("    <div class=\"container\">\n")

	sb.WriteString("        <header class=\"header\">\n")
	sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", title))
	sb.WriteString(fmt.Sprintf("            <div class=\"summary\">Total conversations: <strong>%d</strong></div>\n", len(convs)))
	sb.WriteString("        </header>\n")

	sb.WriteString(d.renderTOC(convs))

	sb.WriteString("        <main>\n")
	for i, c := range convs {
		sb.WriteString(d.renderConversation(i+1, c))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	return sb.String()
}

// Write renders the document to w.
func (d *HTMLDocument) Write(w io.Writer, convs []api.Conversation) error {
	_, err := io.WriteString(w, d.Render(convs))
	return err
}

// WriteFile renders the document to path, replacing any existing file.
func (d *HTMLDocument) WriteFile(path string, convs []api.Conversation) error {
	return util.AtomicWriteFile(path, []byte(d.Render(convs)), 0o644)
}

func anchor(i int) string { return fmt.Sprintf("conv-%d", i) }

func (d *HTMLDocument) renderTOC(convs []api.Conversation) string {
	var sb strings.Builder
	sb.WriteString("        <nav class=\"toc\">\n")
	sb.WriteString("            <h2>Table of Contents</h2>\n")
	sb.WriteString("            <ol>\n")
	for i, c := range convs {
		sb.WriteString(fmt.Sprintf("                <li><a href=\"#%s\">%s</a> <span class=\"toc-date\">%s</span></li>\n",
			anchor(i+1), html.EscapeString(c.DisplayTitle()), c.CreateTime.Stamp("Unknown")))
	}
	sb.WriteString("            </ol>\n")
	sb.WriteString("        </nav>\n")
	return sb.String()
}

func (d *HTMLDocument) renderConversation(idx int, c api.Conversation) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("            <section class=\"conversation\" id=\"%s\">\n", anchor(idx)))
	sb.WriteString(fmt.Sprintf("                <h2 class=\"conversation-title\">%s</h2>\n", html.EscapeString(c.DisplayTitle())))
	sb.WriteString(fmt.Sprintf("                <div class=\"conversation-date\">%s</div>\n", c.CreateTime.Stamp("Unknown date")))
	for _, m := range transcript.Extract(c, d.opts.Strategy) {
		sb.WriteString(renderMessage(m))
	}
	sb.WriteString("            </section>\n")
	return sb.String()
}

func renderMessage(m api.RenderedMessage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("                <div class=\"message %s\">\n", roleClass(m.Role)))
	sb.WriteString(fmt.Sprintf("                    <div class=\"role\">%s</div>\n", html.EscapeString(strings.ToUpper(m.Role))))
	sb.WriteString("                    <div class=\"content\">")
	sb.WriteString(render.HTML(m.Content))
	sb.WriteString("</div>\n")
	sb.WriteString("                </div>\n")
	return sb.String()
}

// roleClass maps a role to one of the styled classes; unknown roles use the
// system style.
func roleClass(role string) string {
	switch role {
	case "user", "assistant", "system":
		return role
	default:
		return "system"
	}
}

const documentCSS = `    <style>
        * { box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            color: #24292e;
            background: #f6f8fa;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 960px; margin: 0 auto; }
        .header, .toc, .conversation {
            background: #ffffff;
            border: 1px solid #e1e4e8;
            border-radius: 8px;
            padding: 20px 28px;
            margin-bottom: 20px;
        }
        .summary { color: #586069; }
        .toc ol { padding-left: 24px; }
        .toc a { color: #0366d6; text-decoration: none; }
        .toc a:hover { text-decoration: underline; }
        .toc-date, .conversation-date { color: #6a737d; font-size: 0.9em; }
        .conversation-title { margin-bottom: 4px; }
        .message {
            border-left: 4px solid #d1d5da;
            border-radius: 4px;
            padding: 10px 16px;
            margin: 14px 0;
        }
        .message.user { background: #f1f8ff; border-left-color: #0366d6; }
        .message.assistant { background: #f0fff4; border-left-color: #22863a; }
        .message.system { background: #fffbdd; border-left-color: #b08800; }
        .role {
            font-size: 0.75em;
            font-weight: 600;
            letter-spacing: 0.05em;
            color: #586069;
            margin-bottom: 6px;
        }
        .content p { margin: 0 0 10px 0; }
        pre {
            background: #f6f8fa;
            border: 1px solid #e1e4e8;
            border-radius: 6px;
            padding: 12px;
            overflow-x: auto;
        }
        code {
            font-family: "SF Mono", Monaco, Inconsolata, "Fira Code", monospace;
            font-size: 0.9em;
            background: rgba(27, 31, 35, 0.05);
            padding: 0.2em 0.4em;
            border-radius: 3px;
        }
        pre code { background: none; padding: 0; }
    </style>
`
