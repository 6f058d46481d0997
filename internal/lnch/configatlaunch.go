//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/e-gun/HipparchiaTopicRuns/internal/mm"
	"github.com/e-gun/HipparchiaTopicRuns/internal/str"
	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	Config = BuildDefaultConfig()
	Msg    = mm.NewMessageMakerWithDefaults()
)

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.DataDir = vv.DEFAULTDATADIR
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LeftRun = vv.DEFAULTLEFTRUN
	c.LoadTimeout = vv.LOADTIMEOUT
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.OutDir = vv.DEFAULTOUTDIR
	c.PaletteSize = vv.PALETTESIZE
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.RightRun = vv.DEFAULTRIGHTRUN
	c.SQLiteFile = vv.DEFAULTSQLITEFILE
	c.Source = vv.SRCCSV
	c.TextLimit = vv.TEXTLIMIT
	c.TokenLimit = vv.TOKENLIMIT
	c.TopicLimit = vv.TOPICLIMIT

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	return &c
}

// RegisterFlags - every configuration value as a flag; the flag names double as config-file keys and HTR_* variables
func RegisterFlags(fs *pflag.FlagSet, c *str.CurrentConfiguration) {
	fs.BoolVar(&c.BlackAndWhite, "blackandwhite", c.BlackAndWhite, "no colour in terminal output or charts")
	fs.StringVarP(&c.DataDir, "datadir", "d", c.DataDir, "directory holding the four csv files")
	fs.IntVarP(&c.EchoLog, "echolog", "e", c.EchoLog, "request logging: 0 none, 1 terse, 2 prolix, 3 everything")
	fs.BoolVar(&c.Gzip, "gzip", c.Gzip, "gzip the viewer's responses")
	fs.StringVar(&c.HostIP, "hostip", c.HostIP, "address the viewer listens on")
	fs.IntVar(&c.HostPort, "hostport", c.HostPort, "port the viewer listens on")
	fs.IntVarP(&c.LeftRun, "leftrun", "l", c.LeftRun, "run index shown in the left panel")
	fs.DurationVar(&c.LoadTimeout, "loadtimeout", c.LoadTimeout, "give up on loading after this long (0 waits forever)")
	fs.IntVarP(&c.LogLevel, "loglevel", "g", c.LogLevel, "message threshold: 0 critical only ... 5 everything")
	fs.StringVarP(&c.OutDir, "outdir", "o", c.OutDir, "where 'report' writes its files")
	fs.IntVar(&c.PaletteSize, "palettesize", c.PaletteSize, "number of topic colours before they repeat")
	fs.StringVar(&c.PGLogin.Host, "pghost", c.PGLogin.Host, "postgres host")
	fs.IntVar(&c.PGLogin.Port, "pgport", c.PGLogin.Port, "postgres port")
	fs.StringVar(&c.PGLogin.User, "pguser", c.PGLogin.User, "postgres user (read access is enough)")
	fs.StringVar(&c.PGLogin.Pass, "pgpass", c.PGLogin.Pass, "postgres password")
	fs.StringVar(&c.PGLogin.DBName, "pgdb", c.PGLogin.DBName, "postgres database")
	fs.BoolVar(&c.ProfileCPU, "profilecpu", c.ProfileCPU, "write a cpu profile")
	fs.BoolVar(&c.ProfileMEM, "profilemem", c.ProfileMEM, "write a memory profile")
	fs.BoolVarP(&c.QuietStart, "quietstart", "q", c.QuietStart, "skip the launch banner")
	fs.IntVarP(&c.RightRun, "rightrun", "r", c.RightRun, "run index shown in the right panel")
	fs.StringVar(&c.SQLiteFile, "sqlitefile", c.SQLiteFile, "sqlite file holding the four tables")
	fs.StringVarP(&c.Source, "source", "s", c.Source, fmt.Sprintf("where the runs come from: %s, %s or %s", vv.SRCCSV, vv.SRCSQLITE, vv.SRCPSQL))
	fs.IntVar(&c.TextLimit, "textlimit", c.TextLimit, "documents per topic")
	fs.IntVar(&c.TokenLimit, "tokenlimit", c.TokenLimit, "terms per topic and rows of the shared-term matrix")
	fs.IntVar(&c.TopicLimit, "topiclimit", c.TopicLimit, "topics per panel")
}

// bindViper - config file, then HTR_* environment, then explicit flags; the last one set wins
// the returned func applies this to the commands and belongs in the root's PersistentPreRunE
func bindViper(cfgfile *string, commands ...*cobra.Command) func() error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(vv.ENVPREFIX)
	v.AutomaticEnv()

	return func() error {
		explicit := *cfgfile
		if explicit == "" {
			explicit = os.Getenv(vv.ENVPREFIX + "_CONFIG")
		}
		configureConfigFile(v, explicit)

		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				return err
			}
		}
		if err := readConfigFile(v, explicit != ""); err != nil {
			return err
		}
		if f := v.ConfigFileUsed(); f != "" {
			Msg.TMI(fmt.Sprintf("'%s' loaded", f))
		}

		var seterr error
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed || !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val == "" {
						return
					}
					if err := f.Value.Set(val); err != nil && seterr == nil {
						seterr = fmt.Errorf("%s: %w", f.Name, err)
					}
				})
			}
		}
		return seterr
	}
}

func configureConfigFile(v *viper.Viper, explicitPath string) {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		return
	}
	v.SetConfigName(vv.CONFIGNAME)
	v.SetConfigType("json")
	v.AddConfigPath(vv.CONFIGLOCATION)
	if h, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(fmt.Sprintf(vv.CONFIGALTAPTH, h))
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if errors.As(err, &cfgErr) && !strict {
			return nil
		}
		return err
	}
	return nil
}

// ValidateConfig - catch the settings that would otherwise fail later and less clearly
func ValidateConfig(c *str.CurrentConfiguration) error {
	const (
		BADSRC  = "unknown source '%s': expected %s, %s or %s"
		BADRUN  = "run indices cannot be negative (left %d, right %d)"
		BADPORT = "port %d is out of range"
	)

	switch c.Source {
	case vv.SRCCSV, vv.SRCSQLITE, vv.SRCPSQL:
	default:
		return fmt.Errorf(BADSRC, c.Source, vv.SRCCSV, vv.SRCSQLITE, vv.SRCPSQL)
	}
	if c.LeftRun < 0 || c.RightRun < 0 {
		return fmt.Errorf(BADRUN, c.LeftRun, c.RightRun)
	}
	if c.HostPort <= 0 || c.HostPort > 65535 {
		return fmt.Errorf(BADPORT, c.HostPort)
	}
	return nil
}
