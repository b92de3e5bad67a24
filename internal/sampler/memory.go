package sampler

import (
	"github.com/Dicklesworthstone/statline/internal/apperrors"
	"github.com/Dicklesworthstone/statline/internal/model"
)

// MemorySampler reads virtual memory utilization once per call.
type MemorySampler struct {
	src MemorySource
}

func NewMemorySampler(src MemorySource) *MemorySampler {
	return &MemorySampler{src: src}
}

func (m *MemorySampler) Sample() (model.Memory, error) {
	vm, err := m.src.VirtualMemory()
	if err != nil {
		return model.Memory{}, apperrors.New(apperrors.SourceMemory, apperrors.KindReadFailed,
			"unable to determine used memory percent", err)
	}
	if vm == nil {
		return model.Memory{}, apperrors.New(apperrors.SourceMemory, apperrors.KindReadFailed,
			"no virtual memory statistics reported", nil)
	}
	return model.Memory{UsedPercent: vm.UsedPercent}, nil
}
