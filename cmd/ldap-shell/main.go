// ldap-shell is an interactive shell for querying and manipulating an
// Active Directory catalog over LDAP.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rvrsh3ll/ldap-shell/internal/config"
	"github.com/rvrsh3ll/ldap-shell/internal/ldap"
	"github.com/rvrsh3ll/ldap-shell/internal/shell"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd := &cobra.Command{
		Use:           "ldap-shell",
		Short:         "Interactive Active Directory LDAP shell",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.URL, "url", cfg.URL, "full LDAP URL (overrides --host)")
	flags.StringVar(&cfg.Host, "host", cfg.Host, "domain controller host or IP")
	flags.StringVarP(&cfg.Domain, "domain", "d", cfg.Domain, "AD DNS domain")
	flags.StringVarP(&cfg.Username, "username", "u", cfg.Username, "account name")
	flags.StringVarP(&cfg.Password, "password", "p", cfg.Password, "account password")
	flags.StringVar(&cfg.NTHash, "hashes", cfg.NTHash, "NT hash for pass-the-hash")
	flags.StringVar(&cfg.BaseDN, "base-dn", cfg.BaseDN, "search base (default: RootDSE defaultNamingContext)")
	flags.StringVar(&cfg.KerberosRealm, "kerberos-realm", cfg.KerberosRealm, "Kerberos realm (enables GSSAPI bind)")
	flags.StringVar(&cfg.KerberosCCache, "ccache", cfg.KerberosCCache, "Kerberos credential cache path")
	flags.StringVar(&cfg.KerberosKeytab, "keytab", cfg.KerberosKeytab, "Kerberos keytab path")
	flags.StringVar(&cfg.KerberosConfig, "krb5-conf", cfg.KerberosConfig, "krb5.conf path")
	flags.StringVar(&cfg.KerberosSPN, "spn", cfg.KerberosSPN, "explicit LDAP service principal (default ldap/<hostname>)")
	flags.BoolVar(&cfg.UseLDAPS, "ldaps", cfg.UseLDAPS, "connect over LDAPS (port 636)")
	flags.BoolVar(&cfg.StartTLS, "starttls", cfg.StartTLS, "negotiate StartTLS on a plain connection")
	flags.BoolVarP(&cfg.SkipVerify, "insecure", "k", cfg.SkipVerify, "accept untrusted certificates")
	flags.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")

	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := newLogger(cfg.Debug)

	connConfig := ldap.DefaultConfig()
	connConfig.URL = cfg.LDAPURL()
	connConfig.Domain = cfg.Domain
	connConfig.BaseDN = cfg.BaseDN
	connConfig.Username = cfg.Username
	connConfig.Password = cfg.Password
	connConfig.NTHash = cfg.NTHash
	connConfig.KerberosRealm = cfg.KerberosRealm
	connConfig.KerberosCCache = cfg.KerberosCCache
	connConfig.KerberosKeytab = cfg.KerberosKeytab
	connConfig.KerberosConfig = cfg.KerberosConfig
	connConfig.KerberosSPN = cfg.KerberosSPN
	connConfig.Timeout = cfg.Timeout
	connConfig.UseTLS = cfg.StartTLS
	connConfig.TLSConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: cfg.SkipVerify,
		ServerName:         cfg.Host,
	}

	client, err := ldap.NewClient(connConfig, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Connect(ctx); err != nil {
		return err
	}
	if err := client.Bind(ctx); err != nil {
		return err
	}
	if err := client.Ping(ctx); err != nil {
		return err
	}

	baseDN, err := client.BaseDN(ctx)
	if err != nil {
		return err
	}

	shell.New(client, baseDN, logger).Run()
	return nil
}

func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()
}
