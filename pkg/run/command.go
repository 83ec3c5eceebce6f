/*
   DragonDMK - DragonDOS disk image tool
   Copyright (c) 2021, Alexander Vollschwitz

   This file is part of DragonDMK.

   DragonDMK is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   DragonDMK is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with DragonDMK. If not, see <http://www.gnu.org/licenses/>.
*/

package run

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

//
const (
	prologueHeader = ""
	epilogueHeader = `
Notes:

`
)

/*
	The package initializer sets up logging based on logrus. The following
	environment variables can be used to configure logging:

		LOG_FORMAT		set to `json` for JSON logging
		LOG_FORCE_COLORS	set to non-empty for forcing colorized log entries
		LOG_METHODS		set to non-empty for including methods in log
		LOG_LEVEL		`panic`, `fatal`, `error`, `warn`, `info`, `debug`, `trace`
*/
func init() {

	// stdout carries file contents and dumps, so log to stderr
	log.SetOutput(os.Stderr)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else if strings.ToLower(os.Getenv("LOG_FORCE_COLORS")) != "" {
		log.SetFormatter(&log.TextFormatter{
			ForceColors: true,
		})
	}

	if strings.ToLower(os.Getenv("LOG_METHODS")) != "" {
		log.SetReportCaller(true)
	}

	level := os.Getenv("LOG_LEVEL")
	if level != "" {
		l, err := log.ParseLevel(level)
		if err != nil {
			log.Errorf("invalid log level: '%s'; valid levels are: panic, "+
				"fatal, error, warn, info, debug, trace", level)
		} else {
			log.SetLevel(l)
		}
	}
}

//
var (
	UnderTest bool
)

// DieOnError exits the running process if e is not nil. The error gets logged.
func DieOnError(e error) {
	if e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		if UnderTest {
			panic(e.Error())
		} else {
			os.Exit(1)
		}
	}
}

// Die exits the running process, while logging the given message.
func Die(msg string, params ...interface{}) {
	if UnderTest {
		err := fmt.Sprintf(msg, params...)
		fmt.Fprint(os.Stderr, err)
		panic(err)
	} else {
		if len(params) > 0 {
			fmt.Fprintf(os.Stderr, msg, params...)
		} else {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}

// GetUserConfirmation asks the user for a yes/no answer on stdin.
func GetUserConfirmation(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var res string
	fmt.Scanln(&res)
	return "y" == strings.ToLower(strings.TrimSpace(res))
}

/*
	NewCommand creates a base command instance, wrapping a new Cobra command.
	The	exec function is invoked when the command's Execute method is called.
*/
func NewCommand(use, short, long, helpPrologue, helpEpilogue string,
	exec func() error) *Command {

	ret := Command{
		cmd: &cobra.Command{
			Use:   use,
			Short: short,
			Long:  long,
			RunE: func(*cobra.Command, []string) error {
				return exec()
			},
			SilenceErrors:         true,
			SilenceUsage:          true,
			DisableFlagsInUseLine: true,
		},
		settings:     map[string]*setting{},
		helpPrologue: helpPrologue,
		helpEpilogue: helpEpilogue,
	}
	ret.helpFunc = ret.cmd.HelpFunc()
	ret.cmd.SetHelpFunc(ret.help)
	return &ret
}

/*
	Command is a wrapper around Cobra & Viper. Even though they already take
	care of a lot of the boiler plate involved in getting configuration settings,
	configuration code can still get convoluted and confusing. The base command
	is here to help with this.

	Also, apparently it's not quite straightforward to have a required setting
	with Cobra/Viper that could either come from a flag or an environment
	variable (https://github.com/spf13/viper/issues/397). In addition, giving a
	meaningful error message in this case that mentions	the	flag and environment
	variable to use, is difficult.
*/
type Command struct {
	//
	cmd *cobra.Command
	//
	settings map[string]*setting
	//
	Args []string
	//
	helpPrologue string
	helpEpilogue string
	helpFunc     func(*cobra.Command, []string)
}

//
func (c *Command) help(cmd *cobra.Command, args []string) {
	if c.helpPrologue != "" {
		fmt.Fprintln(cmd.OutOrStdout(), prologueHeader+c.helpPrologue)
	}
	if c.helpFunc != nil {
		c.helpFunc(cmd, args)
	}
	if c.helpEpilogue != "" {
		fmt.Fprintln(cmd.OutOrStdout(), epilogueHeader+c.helpEpilogue)
	} else {
		fmt.Fprintln(cmd.OutOrStdout())
	}
}

/*
	Execute invokes the exec function that was set on this command when it was
	created. If args is of non-zero length, it overrides os.Args.
*/
func (c *Command) Execute(args []string) error {
	if len(args) > 0 {
		c.cmd.SetArgs(args)
	}
	return c.cmd.Execute()
}

/*
	AddSetting adds a setting to this command. Target points to the variable the
	setting is bound to, and has to be a *string, *bool, or *int. Flag is the
	long command line flag, short its single letter version, and env the name
	of an environment variable that may carry the setting. def is the default
	value, or nil for the zero value. Required settings take no default.
*/
func (c *Command) AddSetting(target interface{}, flag, short, env string,
	def interface{}, help string, required bool) {

	if required && def != nil {
		Die("required setting '%s' does not take a default value", flag)
	}

	helpMsg := help
	if env != "" {
		helpMsg = fmt.Sprintf("%s (%s)", help, env)
	}

	flags := c.cmd.Flags()

	switch t := target.(type) {

	case *string:
		d, ok := defaultOf(def, "").(string)
		if !ok {
			Die("default value for setting '%s' has incorrect type", flag)
		}
		flags.StringVarP(t, flag, short, d, helpMsg)

	case *bool:
		d, ok := defaultOf(def, false).(bool)
		if !ok {
			Die("default value for setting '%s' has incorrect type", flag)
		}
		flags.BoolVarP(t, flag, short, d, helpMsg)

	case *int:
		d, ok := defaultOf(def, 0).(int)
		if !ok {
			Die("default value for setting '%s' has incorrect type", flag)
		}
		flags.IntVarP(t, flag, short, d, helpMsg)

	default:
		Die("setting '%s' is of unsupported type %T", flag, target)
	}

	log.Tracef("add setting: flag=%s, env=%s, type=%T", flag, env, target)

	c.settings[flag] = &setting{
		flag: flag, env: env, required: required, target: target}

	bind(flags, flag, env)
}

// bind connects flag and env to the Viper key of the same name as flag
func bind(flags *pflag.FlagSet, flag, env string) {
	if err := viper.BindPFlag(flag, flags.Lookup(flag)); err != nil {
		Die("cannot bind setting '%s': %v", flag, err)
	}
	if env != "" {
		if err := viper.BindEnv(flag, env); err != nil {
			Die("cannot bind setting '%s' to %s: %v", flag, env, err)
		}
	}
}

//
func defaultOf(def, zero interface{}) interface{} {
	if def == nil {
		return zero
	}
	return def
}

/*
	ParseSettings handles all settings that have been added thus far via the
	AddSetting method. Afterwards, setting values are available in the variables
	to which they were bound. This should be called in the exec function that
	was set on this command when it was created, before any references to
	variables that are bound to settings.
*/
func (c *Command) ParseSettings() {
	for _, s := range c.settings {
		DieOnError(s.resolve())
	}
	c.Args = c.cmd.Flags().Args()
}

//
type setting struct {
	flag     string
	env      string
	required bool
	target   interface{}
}

/*
	resolve places the setting's value into its target. Viper's BindEnv does not
	set the target when the value comes from the environment, so the value is
	always taken from Viper. If it came from a command line flag, nothing
	changes.
*/
func (s *setting) resolve() error {

	missing := false

	switch t := s.target.(type) {

	case *string:
		*t = viper.GetString(s.flag)
		missing = *t == ""

	case *bool:
		*t = viper.GetBool(s.flag)

	case *int:
		*t = viper.GetInt(s.flag)
		missing = *t == 0
	}

	log.Tracef("get setting: flag=%s, set=%v", s.flag, viper.IsSet(s.flag))

	if s.required && missing {
		msg := fmt.Sprintf(
			"you need to specify the --%s command line flag", s.flag)
		if s.env != "" {
			msg = fmt.Sprintf("%s or the %s environment variable", msg, s.env)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}
