package recorder

import "WaveScan/internal/model"

// NoopRecorder is a no-op implementation used when no results database
// is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *ScanRun) error                              { return nil }
func (n *NoopRecorder) RecordTrades(_, _ string, _ []*model.Trade) error        { return nil }
func (n *NoopRecorder) Close() error                                            { return nil }
