package enums

// LineSyncState tracks where a cart line sits in the optimistic update
// cycle: Synced -> Pending on user action, Pending -> Synced on server ack,
// Pending -> Reverting -> Synced when the server rejects the mutation.
type LineSyncState string

const (
	LineSyncStateSynced    LineSyncState = "synced"
	LineSyncStatePending   LineSyncState = "pending"
	LineSyncStateReverting LineSyncState = "reverting"
)

// String implements fmt.Stringer.
func (l LineSyncState) String() string {
	return string(l)
}
