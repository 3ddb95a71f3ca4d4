package enums

// LineMutation identifies which optimistic cart operation is in flight.
type LineMutation string

const (
	LineMutationIncrease LineMutation = "increase"
	LineMutationDecrease LineMutation = "decrease"
	LineMutationRemove   LineMutation = "remove"
	LineMutationToggle   LineMutation = "toggle_checked"
)

// String implements fmt.Stringer.
func (l LineMutation) String() string {
	return string(l)
}
