package object

// Stack is the evaluator's LIFO of values; the last element is the top.
type Stack struct {
	values []Value
}

func NewStack(values ...Value) *Stack {
	return &Stack{values: values}
}

// NumberStack builds a stack from numbers pushed in order.
func NumberStack(numbers []float64) *Stack {
	s := &Stack{values: make([]Value, 0, len(numbers))}
	for _, n := range numbers {
		s.Push(&Number{Value: n})
	}
	return s
}

func (s *Stack) Len() int { return len(s.values) }

// Values returns the elements bottom first. The slice is shared with the stack.
func (s *Stack) Values() []Value { return s.values }

func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

func (s *Stack) Peek() (Value, bool) {
	if len(s.values) == 0 {
		return nil, false
	}
	return s.values[len(s.values)-1], true
}

func (s *Stack) Pop() (Value, bool) {
	if len(s.values) == 0 {
		return nil, false
	}
	top := s.values[len(s.values)-1]
	s.values[len(s.values)-1] = nil
	s.values = s.values[:len(s.values)-1]
	return top, true
}

func (s *Stack) Clear() {
	s.values = nil
}

// PopNumber pops a number, defaulting to 0 on an empty stack.
func (s *Stack) PopNumber(op string) (float64, error) {
	v, ok := s.Pop()
	if !ok {
		return 0, nil
	}
	n, ok := v.(*Number)
	if !ok {
		return 0, &TypeError{Op: op, Want: NUMBER_OBJ, Got: v.Type()}
	}
	return n.Value, nil
}

// PopStream pops a stream, defaulting to the naturals from 0 on an empty stack.
func (s *Stack) PopStream(op string) (*Stream, error) {
	v, ok := s.Pop()
	if !ok {
		return NewStream(From(0)), nil
	}
	st, ok := v.(*Stream)
	if !ok {
		return nil, &TypeError{Op: op, Want: STREAM_OBJ, Got: v.Type()}
	}
	return st, nil
}

// PopBool pops a truth value: non zero numbers and any stream are true, an
// empty stack is false.
func (s *Stack) PopBool() bool {
	v, ok := s.Pop()
	if !ok {
		return false
	}
	if n, ok := v.(*Number); ok {
		return n.Value != 0
	}
	return true
}
