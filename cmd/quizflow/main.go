package main

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/pavelanni/quizflow/internal/handler"
	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
	"github.com/pavelanni/quizflow/internal/store"
	"github.com/pavelanni/quizflow/internal/tui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "load .env:", err)
	}
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quizflow",
		Short: "Multiple-choice quiz in the browser or the terminal",
	}

	serve := serveCmd()
	root.AddCommand(serve, playCmd(), exportCmd(), checkCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `quizflow --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func addLogFlags(cmd *cobra.Command, level string) {
	cmd.Flags().String("log-level", level, "Log level (debug, info, warn, error)")
	cmd.Flags().String("log-format", "text", "Log format (text, json)")
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP quiz server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "quizflow.db", "SQLite database path")
	f.String("title", "Quiz", "Quiz title shown on every page")
	f.String("base-path", "", "URL prefix for sub-path deployments (e.g. /quiz)")
	f.String("state-secret", "", "Key for signing quiz state tokens (or set QUIZFLOW_STATE_SECRET)")
	f.Duration("state-ttl", 2*time.Hour, "How long a quiz page stays valid")
	f.String("admin-password", "", "Password for the results pages (or set QUIZFLOW_ADMIN_PASSWORD)")
	f.StringSlice("cors-origins", []string{"*"}, "Allowed origins for the JSON scoring API")
	addLogFlags(cmd, "info")
	return cmd
}

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Take the quiz in the terminal",
		RunE:  runPlay,
	}
	f := cmd.Flags()
	f.String("db", "quizflow.db", "SQLite database path")
	f.String("title", "Quiz", "Quiz title")
	f.Bool("no-color", false, "Disable colored output")
	f.Bool("no-record", false, "Do not save the result")
	// Log lines would draw over the UI, so only errors by default.
	addLogFlags(cmd, "error")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded attempts as JSON or YAML",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "quizflow.db", "SQLite database path")
	f.String("title", "", "Quiz title included in the export (default: title of the last served quiz)")
	f.StringP("format", "f", "json", "Output format (json, yaml)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	addLogFlags(cmd, "info")
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the question bank and list its questions",
		RunE:  runCheck,
	}
	addLogFlags(cmd, "info")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("QUIZFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("quizflow")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/quizflow")
	v.AddConfigPath("/etc/quizflow")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	bank := quiz.DefaultBank()

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := saveQuizInfo(db, v.GetString("title"), bank); err != nil {
		return fmt.Errorf("save quiz info: %w", err)
	}

	secret := []byte(v.GetString("state-secret"))
	if len(secret) == 0 {
		secret, err = randomSecret()
		if err != nil {
			return fmt.Errorf("generate state secret: %w", err)
		}
		slog.Warn("no state secret configured, quiz pages will not survive a restart")
	}

	adminHash, err := handler.HashAdminPassword(v.GetString("admin-password"))
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	basePath := normalizeBasePath(v.GetString("base-path"))

	cfg := model.QuizConfig{
		Title:       v.GetString("title"),
		BasePath:    basePath,
		StateSecret: secret,
		StateTTL:    v.GetDuration("state-ttl"),
		AdminHash:   adminHash,
		CORSOrigins: v.GetStringSlice("cors-origins"),
	}

	h, err := handler.New(db, bank, cfg)
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if basePath != "" {
		r.Route(basePath, func(sub chi.Router) {
			sub.Use(h.BasePathMiddleware)
			h.Routes(sub)
		})
		r.Get(basePath, func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, basePath+"/", http.StatusMovedPermanently)
		})
	} else {
		r.Use(h.BasePathMiddleware)
		h.Routes(r)
	}

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"title", cfg.Title,
		"questions", len(bank),
		"base_path", basePath,
		"state_ttl", cfg.StateTTL,
		"results_enabled", len(adminHash) > 0,
	)
	return http.ListenAndServe(addr, r)
}

func runPlay(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	bank := quiz.DefaultBank()

	var recorder quiz.Recorder
	if !v.GetBool("no-record") {
		db, err := store.New(v.GetString("db"))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := saveQuizInfo(db, v.GetString("title"), bank); err != nil {
			return fmt.Errorf("save quiz info: %w", err)
		}
		recorder = db
	}

	out := cmd.OutOrStdout()
	m, err := tui.NewModel(bank, tui.Options{
		Title:    v.GetString("title"),
		NoColor:  v.GetBool("no-color") || !isTerminal(out),
		Recorder: recorder,
	})
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithOutput(out)).Run()
	if err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	if fm, ok := final.(tui.Model); ok {
		if err := fm.Err(); err != nil {
			return err
		}
		if card, ok := fm.Scorecard(); ok {
			fmt.Fprintf(out, "You got %d out of %d correct!\n", card.Score, card.Total)
		}
	}
	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	attempts, err := db.ExportAttempts()
	if err != nil {
		return fmt.Errorf("export attempts: %w", err)
	}

	info, err := db.GetQuizInfo()
	if err != nil {
		return fmt.Errorf("read quiz info: %w", err)
	}
	title := v.GetString("title")
	if title == "" {
		title = info.Title
	}
	numQuestions := info.NumQuestions
	if numQuestions == 0 && len(attempts) > 0 {
		numQuestions = attempts[0].Total
	}

	export := model.QuizExport{
		Title:        title,
		ExportedAt:   time.Now().UTC(),
		NumQuestions: numQuestions,
		Attempts:     attempts,
	}

	var data []byte
	switch strings.ToLower(v.GetString("format")) {
	case "json":
		data, err = json.MarshalIndent(export, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case "yaml", "yml":
		data, err = yaml.Marshal(export)
	default:
		return fmt.Errorf("unknown format %q (expected json or yaml)", v.GetString("format"))
	}
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	slog.Info("exported attempts", "count", len(attempts), "output", outPath)
	return nil
}

func runCheck(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)

	bank := quiz.DefaultBank()
	if _, err := quiz.NewSession(bank); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, q := range bank {
		fmt.Fprintf(out, "%d. [%s] %s (%d choices, correct: %s)\n", i+1, q.Type, q.Prompt, len(q.Choices), q.Correct)
	}
	fmt.Fprintf(out, "%d questions OK\n", len(bank))
	return nil
}

// saveQuizInfo records which bank the next attempts are taken on, warning
// when it differs from the one already in the database.
func saveQuizInfo(db *store.Store, title string, bank []model.Question) error {
	hash, err := quiz.Fingerprint(bank)
	if err != nil {
		return err
	}
	prev, err := db.GetQuizInfo()
	if err != nil {
		return err
	}
	if prev.BankHash != "" && prev.BankHash != hash {
		slog.Warn("question bank changed since earlier attempts were recorded",
			"previous_title", prev.Title, "previous_questions", prev.NumQuestions)
	}
	return db.SetQuizInfo(model.QuizInfo{Title: title, NumQuestions: len(bank), BankHash: hash})
}

func normalizeBasePath(p string) string {
	p = strings.TrimRight(p, "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func randomSecret() ([]byte, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// isTerminal reports whether a writer is a TTY.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
