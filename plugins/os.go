package plugins

import (
	"context"
	"encoding/binary"
	"os"
	"runtime"
	"strconv"

	"github.com/Qix-/tag/taglang"
)

var knownPlatforms = []string{
	"aix",
	"android",
	"darwin",
	"dragonfly",
	"freebsd",
	"illumos",
	"ios",
	"js",
	"linux",
	"netbsd",
	"openbsd",
	"plan9",
	"solaris",
	"wasip1",
	"windows",
}

var knownArchs = []string{
	"386",
	"amd64",
	"arm",
	"arm64",
	"loong64",
	"mips",
	"mips64",
	"mips64le",
	"mipsle",
	"ppc64",
	"ppc64le",
	"riscv64",
	"s390x",
	"wasm",
}

// tag names cannot start with a digit
func archTag(arch string) string {
	if arch == "386" {
		return "i386"
	}
	return arch
}

type hostInfo struct {
	platform string
	arch     string
	cpus     int
	little   bool
	home     string
	tmp      string
	hostname string
}

func currentHost() hostInfo {
	home, _ := os.UserHomeDir()
	hostname, _ := os.Hostname()
	return hostInfo{
		platform: runtime.GOOS,
		arch:     runtime.GOARCH,
		cpus:     runtime.NumCPU(),
		little:   binary.NativeEndian.Uint16([]byte{1, 0}) == 1,
		home:     home,
		tmp:      os.TempDir(),
		hostname: hostname,
	}
}

func (h hostInfo) namespace() map[string]taglang.Entry {
	ret := make(map[string]taglang.Entry)

	for _, platform := range knownPlatforms {
		ret[platform] = taglang.Tag{Enabled: platform == h.platform}
	}
	ret[h.platform] = taglang.Tag{Enabled: true}
	for _, arch := range knownArchs {
		ret[archTag(arch)] = taglang.Tag{Enabled: arch == h.arch}
	}
	ret[archTag(h.arch)] = taglang.Tag{Enabled: true}

	ret["singlecore"] = taglang.Tag{Enabled: h.cpus <= 1}
	ret["multicore"] = taglang.Tag{Enabled: h.cpus > 1}
	ret["littleendian"] = taglang.Tag{Enabled: h.little}
	ret["bigendian"] = taglang.Tag{Enabled: !h.little}

	endianness := "BE"
	if h.little {
		endianness = "LE"
	}
	for name, value := range map[string]string{
		"OS_PLATFORM":   h.platform,
		"OS_ARCH":       h.arch,
		"OS_CPUCOUNT":   strconv.Itoa(h.cpus),
		"OS_ENDIANNESS": endianness,
		"HOMEDIR":       h.home,
		"TMPDIR":        h.tmp,
		"HOSTNAME":      h.hostname,
	} {
		ret[name] = taglang.Variable{Value: taglang.Literals(value)}
	}

	return ret
}

// OS contributes platform, architecture and host facts.
func OS(ctx context.Context) (*taglang.Plugin, error) {
	return &taglang.Plugin{
		Name:      "os",
		Namespace: currentHost().namespace(),
	}, nil
}
