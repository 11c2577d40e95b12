package shell

import (
	"context"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/rvrsh3ll/ldap-shell/internal/completer"
	"github.com/rvrsh3ll/ldap-shell/internal/ldap"
)

// ArgSpec describes one positional argument: its display name and the
// completion engines that can suggest values for it.
type ArgSpec struct {
	Name       string
	Completers []*completer.Completer
}

// Command is one shell command.
type Command struct {
	Name    string
	Usage   string
	Summary string
	Args    []ArgSpec
	Run     func(ctx context.Context, sh *Shell, args []string) error
}

// registerCommands builds the command table. Argument completion is bound
// per position to the object categories that make sense for the command.
func (sh *Shell) registerCommands() {
	accounts := []*completer.Completer{sh.userCompleter, sh.computerCompleter}

	commands := []*Command{
		{
			Name:    "get_dn",
			Usage:   "get_dn <account>",
			Summary: "Resolve an account name to its distinguished name",
			Args:    []ArgSpec{{Name: "account", Completers: accounts}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				dn, err := sh.resolver.ResolveDN(ctx, args[0])
				if err != nil {
					return err
				}
				if dn == "" {
					sh.printf("no such object: %s\n", args[0])
					return nil
				}
				sh.printf("%s\n", dn)
				return nil
			},
		},
		{
			Name:    "get_sid",
			Usage:   "get_sid <account>",
			Summary: "Resolve an account name to its security identifier",
			Args:    []ArgSpec{{Name: "account", Completers: accounts}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				sid, err := sh.resolver.ResolveSID(ctx, args[0])
				if err != nil {
					return err
				}
				if sid == "" {
					sh.printf("no such object: %s\n", args[0])
					return nil
				}
				sh.printf("%s\n", sid)
				return nil
			},
		},
		{
			Name:    "get_attr",
			Usage:   "get_attr <account> <attribute>",
			Summary: "Read one attribute of an account",
			Args: []ArgSpec{
				{Name: "account", Completers: accounts},
				{Name: "attribute"},
			},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 2 {
					return errUsage
				}
				value, err := sh.resolver.ResolveAttribute(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				if value == "" {
					sh.printf("no such object or empty attribute: %s\n", args[0])
					return nil
				}
				sh.printf("%s\n", value)
				return nil
			},
		},
		{
			Name:    "sid_to_user",
			Usage:   "sid_to_user <sid>",
			Summary: "Reverse-resolve a SID to an account name",
			Args:    []ArgSpec{{Name: "sid"}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				name, err := sh.resolver.SIDToAccountName(ctx, args[0])
				if err != nil {
					return err
				}
				if name == "" {
					sh.printf("no object with SID %s\n", args[0])
					return nil
				}
				sh.printf("%s\n", name)
				return nil
			},
		},
		{
			Name:    "check_dn",
			Usage:   "check_dn <dn>",
			Summary: "Check whether a distinguished name exists",
			Args:    []ArgSpec{{Name: "dn", Completers: []*completer.Completer{sh.ouCompleter}}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				exists, err := sh.resolver.DNExists(ctx, args[0])
				if err != nil {
					return err
				}
				sh.printf("%t\n", exists)
				return nil
			},
		},
		{
			Name:    "get_domain",
			Usage:   "get_domain <account>",
			Summary: "Show the DNS domain an account lives in",
			Args:    []ArgSpec{{Name: "account", Completers: accounts}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				dn, err := sh.resolver.ResolveDN(ctx, args[0])
				if err != nil {
					return err
				}
				if dn == "" {
					sh.printf("no such object: %s\n", args[0])
					return nil
				}
				sh.printf("%s\n", ldap.DomainNameFromDN(dn))
				return nil
			},
		},
		{
			Name:    "get_info",
			Usage:   "get_info <account>",
			Summary: "Show SID and security-descriptor info for an account",
			Args:    []ArgSpec{{Name: "account", Completers: accounts}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				entry, err := sh.resolver.ResolveAttributes(ctx, args[0], []string{"objectGUID"})
				if err != nil {
					return err
				}
				if entry == nil {
					sh.printf("no such object: %s\n", args[0])
					return nil
				}
				descriptor, sid, err := sh.resolver.SecurityContext(ctx, entry.DN)
				if err != nil {
					return err
				}
				if descriptor == nil {
					sh.printf("no such object: %s\n", entry.DN)
					return nil
				}
				sh.printf("name: %s\n", ldap.NameFromDN(entry.DN))
				sh.printf("dn:   %s\n", entry.DN)
				if guid, err := ldap.ExtractGUID(entry); err == nil {
					sh.printf("guid: %s\n", guid)
				}
				sh.printf("sid:  %s\n", sid)
				sh.printf("security descriptor: %d bytes (owner+DACL)\n", len(descriptor))
				return nil
			},
		},
		{
			Name:    "guid",
			Usage:   "guid <text-or-hex>",
			Summary: "Convert a GUID between canonical text and wire hex",
			Args:    []ArgSpec{{Name: "guid"}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errUsage
				}
				if strings.Contains(args[0], "-") {
					guidBytes, err := ldap.StringToGUID(args[0])
					if err != nil {
						return err
					}
					sh.printf("%s\n", hex.EncodeToString(guidBytes))
					return nil
				}
				guidBytes, err := hex.DecodeString(args[0])
				if err != nil {
					return fmt.Errorf("invalid hex GUID: %w", err)
				}
				text, err := ldap.GUIDToString(guidBytes)
				if err != nil {
					return err
				}
				sh.printf("%s\n", text)
				return nil
			},
		},
		{
			Name:    "new_sd",
			Usage:   "new_sd",
			Summary: "Print the default security descriptor (owner BUILTIN\\Administrators, empty DACL)",
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				sh.printf("%s\n", hex.EncodeToString(ldap.DefaultSecurityDescriptor()))
				return nil
			},
		},
		{
			Name:    "find",
			Usage:   "find <users|computers|groups|ous> [word]",
			Summary: "List cached directory objects matching a word",
			Args:    []ArgSpec{{Name: "type"}, {Name: "word"}},
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) < 1 || len(args) > 2 {
					return errUsage
				}
				comp, ok := sh.completersByName[args[0]]
				if !ok {
					return fmt.Errorf("unknown object type %q", args[0])
				}
				word := ""
				if len(args) == 2 {
					word = args[1]
				}
				for _, candidate := range comp.Complete(ctx, word) {
					sh.printf("%s\n", renderCandidate(candidate))
				}
				return nil
			},
		},
		{
			Name:    "help",
			Usage:   "help",
			Summary: "List available commands",
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				names := make([]string, 0, len(sh.commands))
				for name := range sh.commands {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					cmd := sh.commands[name]
					sh.printf("%-14s %s\n", cmd.Name, cmd.Summary)
				}
				return nil
			},
		},
		{
			Name:    "exit",
			Usage:   "exit",
			Summary: "Leave the shell",
			Run: func(ctx context.Context, sh *Shell, args []string) error {
				sh.done = true
				return nil
			},
		},
	}

	sh.commands = make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		sh.commands[cmd.Name] = cmd
	}
}

// errUsage signals a wrong argument count; the dispatcher prints the usage
// line for the command instead of the raw error.
var errUsage = fmt.Errorf("usage")
