// Package shell implements the interactive operator loop: a prompt with
// type-aware completion over the directory, and the commands that resolve
// names, identifiers and security context.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rvrsh3ll/ldap-shell/internal/completer"
	"github.com/rvrsh3ll/ldap-shell/internal/ldap"
)

// Shell is one interactive session over an authenticated directory
// connection. All directory work happens synchronously on the input loop.
type Shell struct {
	client   ldap.Client
	resolver *ldap.Resolver
	baseDN   string

	userCompleter     *completer.Completer
	computerCompleter *completer.Completer
	groupCompleter    *completer.Completer
	ouCompleter       *completer.Completer
	completersByName  map[string]*completer.Completer

	commands map[string]*Command

	out       io.Writer
	logger    zerolog.Logger
	sessionID string
	done      bool
}

// New wires a shell session: one shared catalog cache, one completion engine
// per object category, the resolver and the command table.
func New(client ldap.Client, baseDN string, logger zerolog.Logger) *Shell {
	sessionID := uuid.NewString()
	logger = logger.With().Str("session_id", sessionID).Logger()

	cache := completer.NewMemoryCacheStore()

	sh := &Shell{
		client:    client,
		resolver:  ldap.NewResolver(client, baseDN, logger),
		baseDN:    baseDN,
		out:       os.Stdout,
		logger:    logger,
		sessionID: sessionID,
	}

	sh.userCompleter = completer.New(completer.Users, client, cache, baseDN, logger)
	sh.computerCompleter = completer.New(completer.Computers, client, cache, baseDN, logger)
	sh.groupCompleter = completer.New(completer.Groups, client, cache, baseDN, logger)
	sh.ouCompleter = completer.New(completer.OrgUnits, client, cache, baseDN, logger)
	sh.completersByName = map[string]*completer.Completer{
		"users":     sh.userCompleter,
		"computers": sh.computerCompleter,
		"groups":    sh.groupCompleter,
		"ous":       sh.ouCompleter,
	}

	sh.registerCommands()

	return sh
}

// Run enters the interactive loop and blocks until the operator exits.
func (sh *Shell) Run() {
	sh.logger.Info().Str("base_dn", sh.baseDN).Msg("starting interactive session")
	sh.printf("connected, base DN: %s\n", sh.baseDN)

	p := prompt.New(
		sh.execute,
		sh.complete,
		prompt.OptionTitle("ldap-shell"),
		prompt.OptionPrefix("# "),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return sh.done
		}),
	)
	p.Run()
}

// execute dispatches one input line.
func (sh *Shell) execute(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	args := splitArgs(line)
	cmd, ok := sh.commands[args[0]]
	if !ok {
		sh.printf("unknown command %q, try help\n", args[0])
		return
	}

	err := cmd.Run(context.Background(), sh, args[1:])
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		sh.printf("usage: %s\n", cmd.Usage)
	default:
		sh.logger.Error().Err(err).Str("command", cmd.Name).Msg("command failed")
		sh.printf("error: %v\n", err)
	}
}

func (sh *Shell) complete(d prompt.Document) []prompt.Suggest {
	return sh.suggest(d.TextBeforeCursor())
}

// suggest serves suggestions for the text before the cursor: command names
// while the first word is being typed, then the positional argument's
// directory catalogs.
func (sh *Shell) suggest(text string) []prompt.Suggest {
	if !strings.ContainsAny(text, " \t") {
		return sh.commandSuggestions(text)
	}

	args := splitArgs(text)
	if len(args) == 0 {
		return nil
	}

	cmd, ok := sh.commands[args[0]]
	if !ok {
		return nil
	}

	// An open-quoted name stays one argument no matter how many spaces it
	// contains, and the quoted argument is still being typed.
	inQuotes := strings.Count(text, `"`)%2 == 1 ||
		strings.Count(text, `'`)%2 == 1
	argIndex := len(args) - 1
	if !endsWithSpace(text) || inQuotes {
		argIndex--
	}
	if argIndex < 0 || argIndex >= len(cmd.Args) {
		return nil
	}

	var suggestions []prompt.Suggest
	for _, comp := range cmd.Args[argIndex].Completers {
		for _, candidate := range comp.Complete(context.Background(), text) {
			suggestions = append(suggestions, prompt.Suggest{
				Text:        candidate.Text,
				Description: comp.Spec().Name,
			})
		}
	}
	return suggestions
}

// commandSuggestions completes command names by prefix.
func (sh *Shell) commandSuggestions(prefix string) []prompt.Suggest {
	suggestions := make([]prompt.Suggest, 0, len(sh.commands))
	for name, cmd := range sh.commands {
		suggestions = append(suggestions, prompt.Suggest{
			Text:        name,
			Description: cmd.Summary,
		})
	}
	return prompt.FilterHasPrefix(suggestions, prefix, true)
}

func endsWithSpace(text string) bool {
	return text != "" && (text[len(text)-1] == ' ' || text[len(text)-1] == '\t')
}

func (sh *Shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}
