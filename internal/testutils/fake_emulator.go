// Package testutils provides helpers for emutest's own tests: a fake
// emulator that re-executes the test binary, fixture writers and
// deterministic identifiers.
package testutils

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// FakeEmulatorEnv is set in the environment of a child process to make a
// test binary behave as the emulator instead of running tests.
const FakeEmulatorEnv = "EMUTEST_FAKE_EMULATOR"

// MaybeRunFakeEmulator turns the current process into the fake emulator when
// FakeEmulatorEnv is set. Call it first thing in TestMain:
//
//	func TestMain(m *testing.M) {
//		testutils.MaybeRunFakeEmulator()
//		os.Exit(m.Run())
//	}
func MaybeRunFakeEmulator() {
	if os.Getenv(FakeEmulatorEnv) != "1" {
		return
	}
	os.Exit(RunFakeEmulator(os.Args[1:], os.Stdout, os.Stderr))
}

// FakeEmulatorPath returns the executable to hand to a runner so that it
// spawns the fake emulator, and the environment entry that activates it.
func FakeEmulatorPath() (string, string) {
	return os.Args[0], FakeEmulatorEnv + "=1"
}

// RunFakeEmulator interprets args as a tiny command language and returns
// the exit code. Supported forms:
//
//	echo WORDS...        print WORDS to stdout
//	stderr WORDS...      print WORDS to stderr
//	split OUT ERR        print OUT to stdout and ERR to stderr
//	crlf WORDS...        print WORDS to stdout with a CRLF line ending
//	exit N [WORDS...]    print WORDS to stdout and exit with N
//	hang                 never return
//	kill                 terminate itself with SIGKILL
//	pwd                  print the working directory
//	--FLAG               print "error: unknown flag" to stderr and exit 4
//	N N N...             print the sum of the integers
func RunFakeEmulator(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: rv64-emu [options] <program>")
		return 1
	}

	rest := strings.Join(args[1:], " ")
	switch cmd := args[0]; {
	case cmd == "echo":
		fmt.Fprintln(stdout, rest)
	case cmd == "stderr":
		fmt.Fprintln(stderr, rest)
	case cmd == "split" && len(args) == 3:
		fmt.Fprintln(stdout, args[1])
		fmt.Fprintln(stderr, args[2])
	case cmd == "crlf":
		fmt.Fprint(stdout, rest+"\r\n")
	case cmd == "exit" && len(args) >= 2:
		code, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(stderr, "bad exit code %q\n", args[1])
			return 2
		}
		if len(args) > 2 {
			fmt.Fprintln(stdout, strings.Join(args[2:], " "))
		}
		return code
	case cmd == "hang":
		for {
			time.Sleep(time.Hour)
		}
	case cmd == "kill":
		self, err := os.FindProcess(os.Getpid())
		if err == nil {
			err = self.Signal(os.Kill)
		}
		fmt.Fprintln(stderr, err)
		return 1
	case cmd == "pwd":
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, wd)
	case strings.HasPrefix(cmd, "--"):
		fmt.Fprintln(stderr, "error: unknown flag")
		return 4
	default:
		sum := 0
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Fprintf(stderr, "error: cannot open %s\n", arg)
				return 1
			}
			sum += n
		}
		fmt.Fprintln(stdout, sum)
	}

	return 0
}
