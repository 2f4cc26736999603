/*
 * runner.go, part of goRED.
 *
 * Copyright 2026 The goRED authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package resp

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/rmera/gored"
)

// Runner runs one stage of a fit for one molecule (or for the
// CollectionName) and variant. The control file must be in place, and
// after a successful run the punch file must be there.
type Runner interface {
	Run(ctx context.Context, stage int, name, suffix string) error
}

// Command runs the resp executable.
type Command struct {
	command string
	dir     string
}

// NewCommand returns a Command with the default settings.
func NewCommand() *Command {
	run := new(Command)
	run.SetDefaults()
	return run
}

// SetDefaults sets the command to $AMBERHOME/bin/resp, or to resp, to
// be found in the PATH, if AMBERHOME is not defined. The program runs in
// the current directory.
func (C *Command) SetDefaults() {
	C.command = os.ExpandEnv("${AMBERHOME}/bin/resp")
	if C.command == "/bin/resp" { //AMBERHOME not defined
		C.command = "resp"
	}
	C.dir = ""
}

// SetCommand sets the path to the resp executable.
func (C *Command) SetCommand(name string) {
	C.command = name
}

// SetDir sets the directory where resp runs, and where all the files are.
func (C *Command) SetDir(dir string) {
	C.dir = dir
}

// Command returns the path to the executable that will be run.
func (C *Command) Command() string {
	return C.command
}

// Args returns the command line arguments for a stage. The charges of
// the previous stage are only read from stage 2 on.
func (C *Command) Args(stage int, name, suffix string) []string {
	f := Files(stage, name, suffix)
	args := []string{"-O", "-i", f.Input, "-o", f.Output, "-p", f.Punch, "-e", f.Espot}
	if stage > 1 {
		args = append(args, "-q", f.QIn)
	}
	return append(args, "-t", f.QOut, "-w", f.Qwts, "-s", f.Esout)
}

// Run runs resp and waits for it to finish or for ctx to be done.
// Whatever resp prints is only used to build the error, if any.
func (C *Command) Run(ctx context.Context, stage int, name, suffix string) error {
	command := exec.CommandContext(ctx, C.command, C.Args(stage, name, suffix)...)
	command.Dir = C.dir
	out, err := command.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if len(msg) > 200 {
			msg = "..." + msg[len(msg)-200:]
		}
		return red.WrapError(red.ErrFitJobFailed, err, "Run", "resp stage %d for %s%s failed (%s)", stage, name, suffix, msg)
	}
	return nil
}
