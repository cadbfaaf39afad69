package contextkeys

type contextKey string

// UserIDKey holds the authenticated user's id in the request context. The
// submission coordinator reads it as the submitter identity and the approval
// service as the approver identity.
const UserIDKey contextKey = "userID"
