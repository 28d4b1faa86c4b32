// Package main provides the CLI entrypoint for vcrack.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/re-dream-it/vigenere-cipher-cracker/internal/alphabet"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/analysis"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/config"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/crack"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/model"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/store"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/stream"
	"github.com/re-dream-it/vigenere-cipher-cracker/internal/tui"
)

const (
	defaultLang         = alphabet.DefaultLanguage
	defaultMaxKeyLength = 20
	defaultCandidates   = 3
	defaultPreview      = 200
	defaultHistoryLast  = 20
)

var (
	crackLang         string
	crackKey          string
	crackShifts       []int
	crackOutput       string
	crackAnalyze      bool
	crackMaxKeyLength int
	crackCandidates   int
	crackPreview      int

	encryptLang   string
	encryptKey    string
	encryptOutput string

	historyLang string
	historyLast int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vcrack FILE",
		Short:         "Vigenère cipher cracker",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runCrackCmd,
	}

	rootCmd.Flags().StringVar(&crackLang, "lang", defaultLang, "language table (ru, en)")
	rootCmd.Flags().StringVarP(&crackKey, "key", "k", "", "known key; skips estimation and prompting")
	rootCmd.Flags().IntSliceVarP(&crackShifts, "shifts", "s", nil, "explicit shift per key position; skips prompting")
	rootCmd.Flags().StringVarP(&crackOutput, "output", "o", "", "write decrypted text to this path")
	rootCmd.Flags().BoolVar(&crackAnalyze, "analyze", false, "print ranked key length candidates and exit")
	rootCmd.Flags().IntVar(&crackMaxKeyLength, "max-key-length", defaultMaxKeyLength, "largest key length tested")
	rootCmd.Flags().IntVar(&crackCandidates, "candidates", defaultCandidates, "candidates shown per prompt")
	rootCmd.Flags().IntVar(&crackPreview, "preview", defaultPreview, "characters of plaintext previewed on stdout (0 = all)")

	rootCmd.AddCommand(newEncryptCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runCrackCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &crackLang, fileCfg.Crack.Lang)
	applyIntConfig(cmd, "max-key-length", &crackMaxKeyLength, fileCfg.Crack.MaxKeyLength)
	applyIntConfig(cmd, "candidates", &crackCandidates, fileCfg.Crack.Candidates)
	applyIntConfig(cmd, "preview", &crackPreview, fileCfg.Crack.Preview)

	cfg := model.Config{
		Lang:         crackLang,
		MaxKeyLength: crackMaxKeyLength,
		Candidates:   crackCandidates,
		Preview:      crackPreview,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	a, err := alphabet.ForLanguage(cfg.Lang)
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read ciphertext: %w", err)
	}
	text := string(data)
	logErrf("Read %d characters from %s\n", utf8.RuneCountInString(text), path)

	s := stream.Normalize(text, a)

	if crackAnalyze {
		return renderAnalysis(cmd, s, a, cfg.MaxKeyLength)
	}

	keySet := cmd.Flags().Changed("key")
	shiftsSet := cmd.Flags().Changed("shifts")
	if keySet && shiftsSet && utf8.RuneCountInString(crackKey) != len(crackShifts) {
		return fmt.Errorf("%w: key has %d letters but %d shifts were given",
			crack.ErrKeyLengthMismatch, utf8.RuneCountInString(crackKey), len(crackShifts))
	}

	var result crack.Result
	mode := model.ModeInteractive
	switch {
	case keySet:
		mode = model.ModeKey
		vector, err := crack.VectorFromKey(crackKey, a)
		if err != nil {
			return err
		}
		result, err = decryptDirect(s, vector, a)
		if err != nil {
			return err
		}
	case shiftsSet:
		mode = model.ModeShifts
		vector, err := crack.VectorFromShifts(crackShifts, a)
		if err != nil {
			return err
		}
		result, err = decryptDirect(s, vector, a)
		if err != nil {
			return err
		}
	default:
		var chooser crack.Chooser = &tui.Chooser{Alphabet: a, Candidates: cfg.Candidates, MaxLength: len(s.Letters)}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			mode = model.ModeAuto
			chooser = crack.AutoChooser{}
		}
		resolver := crack.Resolver{Alphabet: a, MaxKeyLength: cfg.MaxKeyLength, Chooser: chooser}
		result, err = resolver.Resolve(s)
		if err != nil {
			return err
		}
	}

	if result.Key != "" {
		logErrf("Key: %s\n", result.Key)
	}
	if crackOutput != "" {
		if err := os.WriteFile(crackOutput, []byte(result.Plaintext), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logErrf("Full decrypted text saved to %s\n", crackOutput)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), preview(result.Plaintext, cfg.Preview)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if result.Vector.Length > 0 {
		recordSession(model.Session{
			FinishedAt: time.Now(),
			File:       path,
			Lang:       cfg.Lang,
			KeyLength:  result.Vector.Length,
			Key:        result.Key,
			Mode:       mode,
		})
	}
	return nil
}

func decryptDirect(s stream.Stream, vector *crack.ShiftVector, a alphabet.Alphabet) (crack.Result, error) {
	plaintext, err := crack.Decrypt(s, vector, a)
	if err != nil {
		return crack.Result{}, err
	}
	return crack.Result{
		Vector:    vector,
		Key:       crack.KeyString(vector, a),
		Plaintext: plaintext,
	}, nil
}

func renderAnalysis(cmd *cobra.Command, s stream.Stream, a alphabet.Alphabet, maxLen int) error {
	candidates, err := analysis.EstimateKeyLengths(s.Letters, a, maxLen)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "%-6s  %-7s  %s\n", "Length", "Avg IC", "IC diff"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, cand := range candidates {
		if _, err := fmt.Fprintf(out, "%-6d  %.4f   %.4f\n", cand.Length, cand.AvgIC, cand.Diff); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func preview(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func recordSession(session model.Session) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()
	if _, err := st.InsertSession(context.Background(), session); err != nil {
		logErrf("failed to record session: %v\n", err)
	}
}

func newEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt FILE",
		Short: "Vigenère-encrypt a file with a known key",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncryptCmd,
	}
	cmd.Flags().StringVar(&encryptLang, "lang", defaultLang, "language table (ru, en)")
	cmd.Flags().StringVarP(&encryptKey, "key", "k", "", "encryption key")
	cmd.Flags().StringVarP(&encryptOutput, "output", "o", "", "write ciphertext to this path")
	if err := cmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}
	return cmd
}

func runEncryptCmd(cmd *cobra.Command, args []string) error {
	a, err := alphabet.ForLanguage(encryptLang)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read plaintext: %w", err)
	}
	ciphertext, err := crack.Encrypt(string(data), encryptKey, a)
	if err != nil {
		return err
	}
	if encryptOutput != "" {
		if err := os.WriteFile(encryptOutput, []byte(ciphertext), 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), ciphertext); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported language tables",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	for _, lang := range alphabet.Languages() {
		a, err := alphabet.ForLanguage(lang)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%d letters)\n", lang, a.Len()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past decryption sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyLang, "lang", "", "language filter")
	cmd.Flags().IntVar(&historyLast, "last", defaultHistoryLast, "limit to last N sessions")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	sessions, err := st.ListSessions(context.Background(), model.HistoryConfig{
		Lang: historyLang,
		Last: historyLast,
	})
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		if _, err := fmt.Fprintln(out, "No sessions found."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if _, err := fmt.Fprintf(out, "%-20s  %-4s  %-6s  %-12s  %-11s  %s\n",
		"Finished", "Lang", "Length", "Key", "Mode", "File"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, session := range sessions {
		if _, err := fmt.Fprintf(out, "%-20s  %-4s  %-6d  %-12s  %-11s  %s\n",
			session.FinishedAt.Format("2006-01-02 15:04:05"),
			session.Lang,
			session.KeyLength,
			session.Key,
			session.Mode,
			session.File,
		); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vcrack configuration
# Uncomment a value to enable it. CLI flags override config values.

[crack]
# lang = %q               # Language table (%s)
# max-key-length = %d     # Largest key length tested
# candidates = %d          # Candidates shown per prompt
# preview = %d           # Characters of plaintext previewed on stdout (0 = all)
`,
		defaultLang,
		strings.Join(alphabet.Languages(), ", "),
		defaultMaxKeyLength,
		defaultCandidates,
		defaultPreview,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.MaxKeyLength <= 0 {
		return fmt.Errorf("--max-key-length must be > 0")
	}
	if cfg.Candidates <= 0 {
		return fmt.Errorf("--candidates must be > 0")
	}
	if cfg.Preview < 0 {
		return fmt.Errorf("--preview must be >= 0")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
