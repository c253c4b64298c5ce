package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// defaultQuestions are Swiss German questions the prompt has to cope with.
var defaultQuestions = []string{
	"Bietet Functiomed au Rheumatologie und Innere Medizin aa, und für weli Beschwerde isch das sinnvoll?",
	"Für weli Situation isch e Stammzelle-Behandlig (swiss stem cells) i de Orthopädie relevant?",
	"Was isch dr Unterschied zwüsche Osteopathie und Etiopathie bi Functiomed?",
	"Weli Problem im Kiefergelenk oder im Gesichtsbereich chönd mit Kiefertherapie behandlet werde?",
	"Für was isch d'Colon-Hydro-Therapie gedacht und wie lauft so e Behandlig ab?",
	"Was isch NUMO Orthopedic Systems und wie hilft das bi Lauf- oder Ganganalyse?",
	"Was umfasst FunctioTraining genau (Usduur, Koordination, Kraft, Beweglichkeit), und wie lauft es ab?",
	"Wänn sind d'Öffnigsziite vo de Trainingsflächi (FunctioTraining), und sind die anders als s'Sekretariat?",
	"Git es bi Functiomed es Notfall-System für akuti Beschwerde vom Bewegigsapparat?",
	"Wie chani online en Termin bueche, und für weli Aagebot gaht das?",
}

var (
	separator = "\n" + strings.Repeat("─", 80) + "\n"
	banner    = strings.Repeat("═", 80)
)

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		lang    string
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Send questions to a running FUNIA server and print the answers as plain text",
		PreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			if !cmd.Flags().Changed("url") {
				baseURL = defaultBaseURL()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			questions := args
			if file != "" {
				fromFile, err := readQuestions(file)
				if err != nil {
					return err
				}
				questions = append(questions, fromFile...)
			}
			if len(questions) == 0 {
				questions = defaultQuestions
			}

			c := &client{baseURL: strings.TrimRight(baseURL, "/"), lang: lang, http: &http.Client{Timeout: timeout}}
			run(cmd.Context(), cmd.OutOrStdout(), c, questions)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Server base URL (default $CHATBOT_URL or http://localhost:$PORT)")
	cmd.Flags().StringVar(&lang, "lang", "de", "Reply language (de, en, fr)")
	cmd.Flags().StringVar(&file, "file", "", "File with one question per line")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Minute, "Timeout per question")
	return cmd
}

func defaultBaseURL() string {
	if u := os.Getenv("CHATBOT_URL"); u != "" {
		return u
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	return "http://localhost:" + port
}

func readQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if q := strings.TrimSpace(sc.Text()); q != "" && !strings.HasPrefix(q, "#") {
			out = append(out, q)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return out, nil
}

func run(ctx context.Context, w io.Writer, c *client, questions []string) {
	fmt.Fprintln(w, "\n"+banner)
	fmt.Fprintln(w, "  LLM-Antworten zu den definierten Fragen (Functiomed Chatbot)")
	fmt.Fprintln(w, "  Base URL:", c.baseURL)
	fmt.Fprintln(w, banner)

	for i, q := range questions {
		fmt.Fprint(w, separator)
		fmt.Fprintf(w, "  [%d/%d]\n", i+1, len(questions))
		fmt.Fprintf(w, "\n  ❓ FRAGE:\n  %s\n", q)

		answer, err := c.ask(ctx, q)
		if err != nil {
			fmt.Fprintf(w, "\n  📌 ANTWORT:\n\n    ⚠ Fehler: %v\n", err)
			continue
		}
		fmt.Fprintf(w, "\n  📌 ANTWORT:\n\n%s\n", formatAnswer(answer))
	}

	fmt.Fprint(w, separator)
	fmt.Fprintln(w, "  Ende der Ausgabe.")
}

type client struct {
	baseURL string
	lang    string
	http    *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (c *client) ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"messages": []chatMessage{{Role: "user", Content: question}},
		"language": c.lang,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out struct {
		Message chatMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return strings.TrimSpace(out.Message.Content), nil
}
