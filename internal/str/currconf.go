//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

import "time"

type CurrentConfiguration struct {
	BlackAndWhite bool
	DataDir       string
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	Gzip          bool
	HostIP        string
	HostPort      int
	LeftRun       int
	LoadTimeout   time.Duration
	LogLevel      int
	OutDir        string
	PaletteSize   int
	PGLogin       PostgresLogin
	ProfileCPU    bool
	ProfileMEM    bool
	QuietStart    bool
	RightRun      int
	SQLiteFile    string
	Source        string // "csv", "sqlite", "postgres"
	TextLimit     int
	TokenLimit    int
	TopicLimit    int
}
