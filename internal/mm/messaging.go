//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package mm

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/e-gun/HipparchiaTopicRuns/internal/vv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//
// TERMINAL OUTPUT/MESSAGES
//

const (
	MSGMAND              = -1
	MSGCRIT              = 0
	MSGWARN              = 1
	MSGNOTE              = 2
	MSGFYI               = 3
	MSGPEEK              = 4
	MSGTMI               = 5
	TIMETRACKERMSGTHRESH = MSGFYI
	RESET                = "\033[0m"
	BLUE1                = "\033[38;5;38m"  // DeepSkyBlue2
	BLUE2                = "\033[38;5;68m"  // SteelBlue3
	CYAN2                = "\033[38;5;117m" // SkyBlue1
	GREEN                = "\033[38;5;70m"  // Chartreuse3
	RED1                 = "\033[38;5;160m" // Red3
	YELLOW1              = "\033[38;5;178m" // Gold3
	YELLOW2              = "\033[38;5;143m" // DarkKhaki
	GREY3                = "\033[38;5;242m" // Grey42
	WHITE                = "\033[38;5;255m" // Grey93
	BLINK                = "\033[30;0;5m"
	PANIC                = "[%s%s v.%s%s] (%s%s%s) %sUNRECOVERABLE ERROR%s"
)

// MessageMaker - leveled terminal output; the records themselves are written by a zap core
type MessageMaker struct {
	Lnc  time.Time
	BW   bool
	LLvl int
	LNm  string
	SNm  string
	Ver  string
	Win  bool
	out  io.Writer
	zl   *zap.Logger
	mtx  sync.RWMutex
}

// NewMessageMaker - a MessageMaker writing to stdout
func NewMessageMaker(longname, shortname, version string, loglevel int) *MessageMaker {
	return NewMessageMakerTo(os.Stdout, longname, shortname, version, loglevel)
}

// NewMessageMakerTo - a MessageMaker writing to w (tests hand in a buffer)
func NewMessageMakerTo(w io.Writer, longname, shortname, version string, loglevel int) *MessageMaker {
	m := &MessageMaker{
		Lnc:  time.Now(),
		LLvl: loglevel,
		LNm:  longname,
		SNm:  shortname,
		Ver:  version,
		Win:  runtime.GOOS == "windows",
		out:  w,
	}
	m.zl = buildzap(w)
	return m
}

// buildzap - the bare "[HTR] message" line: no timestamps or level names, just the message
func buildzap(w io.Writer) *zap.Logger {
	ec := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), zapcore.DebugLevel)
	return zap.New(core)
}

// zaplevel - map our thresholds onto zap's levels
func zaplevel(threshold int) zapcore.Level {
	switch {
	case threshold <= MSGCRIT:
		return zapcore.ErrorLevel
	case threshold == MSGWARN:
		return zapcore.WarnLevel
	case threshold <= MSGFYI:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// SetLevel - the config is read after the first MessageMaker exists
func (m *MessageMaker) SetLevel(ll int) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.LLvl = ll
}

// SetBW - disable ANSI colour
func (m *MessageMaker) SetBW(bw bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.BW = bw
}

// Emit - send a message to the terminal, perhaps adding color and style to it
func (m *MessageMaker) Emit(message string, threshold int) {
	// sample output: "[HTR] 2 runs loaded from csv"
	m.mtx.RLock()
	ll := m.LLvl
	bw := m.BW || m.Win
	m.mtx.RUnlock()

	if ll < threshold {
		return
	}

	var line string
	if !bw {
		var color string

		switch threshold {
		case MSGMAND:
			color = GREEN
		case MSGCRIT:
			color = RED1
		case MSGWARN:
			color = YELLOW2
		case MSGNOTE:
			color = YELLOW1
		case MSGFYI:
			color = CYAN2
		case MSGPEEK:
			color = BLUE2
		case MSGTMI:
			color = GREY3
		default:
			color = WHITE
		}
		line = fmt.Sprintf("[%s%s%s] %s%s%s", YELLOW1, m.SNm, RESET, color, message, RESET)
	} else {
		// terminal color codes not w's friend
		line = fmt.Sprintf("[%s] %s", m.SNm, message)
	}

	if ce := m.zl.Check(zaplevel(threshold), line); ce != nil {
		ce.Write()
	}
}

func (m *MessageMaker) MAND(s string) { m.Emit(s, MSGMAND) }
func (m *MessageMaker) CRIT(s string) { m.Emit(s, MSGCRIT) }
func (m *MessageMaker) WARN(s string) { m.Emit(s, MSGWARN) }
func (m *MessageMaker) NOTE(s string) { m.Emit(s, MSGNOTE) }
func (m *MessageMaker) FYI(s string)  { m.Emit(s, MSGFYI) }
func (m *MessageMaker) PEEK(s string) { m.Emit(s, MSGPEEK) }
func (m *MessageMaker) TMI(s string)  { m.Emit(s, MSGTMI) }

// Color - color text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Color(tagged string) string {
	// "[git: C4%sC0]" ==> green text for the %s
	swap := strings.NewReplacer("C1", "", "C2", "", "C3", "", "C4", "", "C5", "", "C6", "", "C7", "", "C0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("C1", YELLOW1, "C2", CYAN2, "C3", BLUE1, "C4", GREEN, "C5", RED1,
			"C6", GREY3, "C7", BLINK, "C0", RESET)
	}
	return swap.Replace(tagged)
}

// Styled - style text with ANSI codes by swapping out pseudo-tags
func (m *MessageMaker) Styled(tagged string) string {
	const (
		BOLD    = "\033[1m"
		ITAL    = "\033[3m"
		UNDER   = "\033[4m"
		REVERSE = "\033[7m"
		STRIKE  = "\033[9m"
	)
	swap := strings.NewReplacer("S1", "", "S2", "", "S3", "", "S4", "", "S5", "", "S0", "")

	if !m.Win && !m.BW {
		swap = strings.NewReplacer("S1", BOLD, "S2", ITAL, "S3", UNDER, "S4", STRIKE, "S5", REVERSE,
			"S0", RESET)
	}
	return swap.Replace(tagged)
}

func (m *MessageMaker) ColStyle(tagged string) string {
	return m.Styled(m.Color(tagged))
}

// Print - unleveled output of an already styled block (banners, summaries)
func (m *MessageMaker) Print(s string) {
	fmt.Fprintln(m.out, s)
}

// EC - report any non-nil error and carry on
func (m *MessageMaker) EC(err error) {
	if err != nil {
		m.Emit(err.Error(), MSGCRIT)
	}
}

// EF - report error and function, then exit
func (m *MessageMaker) EF(err error, fn string) {
	if err != nil {
		m.zl.Error(fmt.Sprintf(PANIC, YELLOW2, m.LNm, m.Ver, RESET, CYAN2, fn, RESET, RED1, RESET), zap.Error(err))
		m.ExitOrHang(1)
	}
}

// ExitOrHang - Windows should hang to keep the error visible before the window closes and hides it
func (m *MessageMaker) ExitOrHang(e int) {
	const (
		HANG = `Execution suspended. %s is now frozen. Note any errors above. Execution will halt after %d seconds.`
		SUSP = 60
	)
	_ = m.zl.Sync()
	if !m.Win {
		os.Exit(e)
	} else {
		m.Emit(fmt.Sprintf(HANG, m.LNm, SUSP), MSGMAND)
		time.Sleep(SUSP * time.Second)
		os.Exit(e)
	}
}

// Timer - report how much time elapsed between A and B
func (m *MessageMaker) Timer(letter string, o string, start time.Time, previous time.Time) {
	// sample output: "[A2: 0.113s][Δ: 0.021s] 4 tables fetched"
	d := fmt.Sprintf("[Δ: %.3fs] ", time.Since(previous).Seconds())
	o = fmt.Sprintf("[%s: %.3fs]", letter, time.Since(start).Seconds()) + d + o
	m.Emit(o, TIMETRACKERMSGTHRESH)
}

//
// PACKAGE-LEVEL MAKERS
//

var (
	made   []*MessageMaker
	madmtx sync.Mutex
)

// NewMessageMakerWithDefaults - a stdout MessageMaker that ConfigureAll() will later adjust
func NewMessageMakerWithDefaults() *MessageMaker {
	m := NewMessageMaker(vv.MYNAME, vv.SHORTNAME, vv.VERSION, vv.DEFAULTGOLOGLEVEL)
	madmtx.Lock()
	made = append(made, m)
	madmtx.Unlock()
	return m
}

// ConfigureAll - push the configured log level and colour setting into every default MessageMaker
func ConfigureAll(ll int, bw bool) {
	madmtx.Lock()
	defer madmtx.Unlock()
	for _, m := range made {
		m.SetLevel(ll)
		m.SetBW(bw)
	}
}
