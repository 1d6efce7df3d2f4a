package demo

import (
	"context"
	"fmt"
)

// ScanSummary counts what a diagnostic scan found.
type ScanSummary struct {
	Scanned  int
	Flagged  int
	Warnings int
	Errors   int
}

func (s *ScanSummary) add(m Message) bool {
	s.Scanned++
	warnings := len(FormatWarnings(m.MessageWarnings()))
	hasErr := m.MessageError() != ""
	if warnings == 0 && !hasErr {
		return false
	}
	s.Flagged++
	s.Warnings += warnings
	if hasErr {
		s.Errors++
	}
	return true
}

// ScanNetMessages walks the net messages and send tables of every regular and
// sign-on frame and hands the report lines of each flagged record to emit.
// progress is called per frame.
func (f *File) ScanNetMessages(ctx context.Context, progress ProgressFunc, emit func(lines []string)) (ScanSummary, error) {
	var sum ScanSummary
	total := len(f.Frames) + len(f.SignOnFrames)
	walk := func(prefix string, frames []Frame, offset int) error {
		for fi, frame := range frames {
			if fi%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			if frame.Packet != nil {
				for mi, msg := range frame.Packet.Messages {
					if sum.add(msg) && emit != nil {
						emit(Report(fmt.Sprintf("%s[%d] message[%d]", prefix, fi, mi), msg))
					}
				}
			}
			if frame.DataTables != nil {
				for ti, st := range frame.DataTables.SendTables {
					if sum.add(st) && emit != nil {
						emit(Report(fmt.Sprintf("%s[%d] send_table[%d]", prefix, fi, ti), st))
					}
				}
			}
			if progress != nil {
				progress(offset+fi+1, total)
			}
		}
		return nil
	}
	if err := walk("frame", f.Frames, 0); err != nil {
		return sum, err
	}
	if err := walk("sign_on_frame", f.SignOnFrames, len(f.Frames)); err != nil {
		return sum, err
	}
	return sum, nil
}

// ScanUserMessages reports every extracted user message with warnings or a
// decode error.
func (f *File) ScanUserMessages(ctx context.Context, progress ProgressFunc, emit func(lines []string)) (ScanSummary, error) {
	var sum ScanSummary
	for i, msg := range f.UserMessages {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
		}
		if sum.add(msg) && emit != nil {
			emit(Report(fmt.Sprintf("user_message[%d]", i), msg))
		}
		if progress != nil {
			progress(i+1, len(f.UserMessages))
		}
	}
	return sum, nil
}
