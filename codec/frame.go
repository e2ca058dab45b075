package codec

import "github.com/htlvproto/htlv/value"

// frame is a composite (Array or Object) in progress during decode. It
// tracks where the composite's payload ends in the input and the children
// decoded so far.
type frame struct {
	tag      uint64
	kind     value.Type // TypeArray or TypeObject
	endOff   int         // absolute offset where this composite's payload ends
	children []value.Item
	depth    int
}

// frameStack is a LIFO of in-progress composites. It does not bound its own
// size; Decoder.pushComposite checks the Decoder's maxDepth before each
// push (spec invariant I4: nesting depth <= 32).
type frameStack struct {
	frames []*frame
}

func (s *frameStack) push(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) pop() *frame {
	n := len(s.frames)
	f := s.frames[n-1]
	s.frames = s.frames[:n-1]

	return f
}

func (s *frameStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}

	return s.frames[len(s.frames)-1]
}

func (s *frameStack) empty() bool {
	return len(s.frames) == 0
}

func (s *frameStack) len() int {
	return len(s.frames)
}
