package tagfiles

import (
	"github.com/Qix-/tag/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
