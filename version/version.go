// This file is part of Sandstorm.
//
// Sandstorm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sandstorm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sandstorm.  If not, see <https://www.gnu.org/licenses/>.

// Package version records the version of the program as a whole.
package version

import (
	"runtime/debug"
)

// The name to use when referring to the application.
const ApplicationName = "Sandstorm"

// number is set through the linker by the release process. if it is empty
// then the binary was not built from a release tag.
var number string

// revision contains the vcs revision. if the source had been modified but not
// committed then the string is suffixed with "+dirty".
var revision string

// Version returns the version string, the revision string and whether this is
// a numbered release version.
func Version() (string, string, bool) {
	version := number
	if version == "" {
		version = "unreleased"
	}
	return version, revision, version == number && number != ""
}

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		revision = "no vcs information"
		return
	}

	var vcsRevision string
	var vcsModified bool

	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			vcsRevision = v.Value
		case "vcs.modified":
			vcsModified = v.Value == "true"
		}
	}

	if vcsRevision == "" {
		revision = "no vcs information"
		return
	}

	revision = vcsRevision
	if vcsModified {
		revision += "+dirty"
	}
}
