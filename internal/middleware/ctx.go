package middleware

type ctxKey string

const ContextUserID ctxKey = "user_id"
