package reactive

// BoolCell wraps Cell[bool] with convenience methods for boolean slots.
type BoolCell struct {
	*Cell[bool]
}

// NewBoolCell creates a new BoolCell with the given initial value.
func NewBoolCell(initial bool) *BoolCell {
	return &BoolCell{NewCell(initial)}
}

// Toggle inverts the boolean value.
func (c *BoolCell) Toggle() {
	c.Update(func(b bool) bool { return !b })
}

// SetTrue sets the value to true.
func (c *BoolCell) SetTrue() {
	c.Set(true)
}

// SetFalse sets the value to false.
func (c *BoolCell) SetFalse() {
	c.Set(false)
}

// IntCell wraps Cell[int] with convenience methods for integer slots.
type IntCell struct {
	*Cell[int]
}

// NewIntCell creates a new IntCell with the given initial value.
func NewIntCell(initial int) *IntCell {
	return &IntCell{NewCell(initial)}
}

// Inc increments the value by 1.
func (c *IntCell) Inc() {
	c.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (c *IntCell) Dec() {
	c.Update(func(n int) int { return n - 1 })
}

// Add adds the given value.
func (c *IntCell) Add(n int) {
	c.Update(func(v int) int { return v + n })
}

// StringCell wraps Cell[string] with convenience methods for text slots.
type StringCell struct {
	*Cell[string]
}

// NewStringCell creates a new StringCell with the given initial value.
func NewStringCell(initial string) *StringCell {
	return &StringCell{NewCell(initial)}
}

// Clear resets the value to the empty string.
func (c *StringCell) Clear() {
	c.Set("")
}

// IsEmpty reports whether the current value is the empty string.
func (c *StringCell) IsEmpty() bool {
	return c.Get() == ""
}
