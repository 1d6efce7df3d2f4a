package demo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const cancelCheckInterval = 1024

// Index extracts user messages and game events from the regular frame
// sequence and records their origin. Decoders that build a File by hand call
// it once the frames are in place; Open does so automatically. The two walks
// only read frames and write disjoint fields, so they run concurrently.
func (f *File) Index(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		messages, index, err := extractUserMessages(ctx, f.Frames)
		if err != nil {
			return err
		}
		f.UserMessages, f.frameUserMessages = messages, index
		return nil
	})
	g.Go(func() error {
		gameEvents, index, err := extractGameEvents(ctx, f.Frames)
		if err != nil {
			return err
		}
		f.GameEvents, f.frameGameEvents = gameEvents, index
		return nil
	})
	return g.Wait()
}

func extractUserMessages(ctx context.Context, frames []Frame) ([]UserMessage, []map[int]int, error) {
	var out []UserMessage
	index := make([]map[int]int, len(frames))
	for fi, frame := range frames {
		if fi%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		if frame.Packet == nil {
			continue
		}
		for mi, msg := range frame.Packet.Messages {
			if msg.UserMessage == nil {
				continue
			}
			if index[fi] == nil {
				index[fi] = make(map[int]int)
			}
			index[fi][mi] = len(out)
			out = append(out, UserMessage{UserMessagePayload: *msg.UserMessage, Frame: fi, Message: mi})
		}
	}
	return out, index, nil
}

func extractGameEvents(ctx context.Context, frames []Frame) ([]GameEvent, []map[int]int, error) {
	var out []GameEvent
	index := make([]map[int]int, len(frames))
	for fi, frame := range frames {
		if fi%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}
		if frame.Packet == nil {
			continue
		}
		for mi, msg := range frame.Packet.Messages {
			if msg.GameEvent == nil {
				continue
			}
			if index[fi] == nil {
				index[fi] = make(map[int]int)
			}
			index[fi][mi] = len(out)
			out = append(out, GameEvent{GameEventPayload: *msg.GameEvent, Frame: fi, Message: mi})
		}
	}
	return out, index, nil
}
