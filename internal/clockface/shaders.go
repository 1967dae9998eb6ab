package clockface

import (
	"github.com/hubastard/clockface/engine/assets"
	"github.com/hubastard/clockface/engine/core"
)

// WatchedShaders reloads a shader pair whenever the watcher sees it change.
type WatchedShaders struct {
	Pair    assets.ShaderPair
	Watcher *assets.ShaderWatcher
}

func (ws WatchedShaders) Changed() bool { return ws.Watcher.Changed() }

func (ws WatchedShaders) Desc() (core.PipelineDesc, error) { return LoadPipelineDesc(ws.Pair) }

// LoadPipelineDesc reads both stages of pair from disk.
func LoadPipelineDesc(pair assets.ShaderPair) (core.PipelineDesc, error) {
	vs, fs, err := pair.Load()
	if err != nil {
		return core.PipelineDesc{}, err
	}
	return PipelineDesc(vs, fs), nil
}
