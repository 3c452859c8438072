// Package pixbed provides a minimal image hosting service.
//
// Features:
// - Image upload with media type and size validation
// - Paginated gallery with server-rendered pages
// - Single and bulk deletion
// - Append-only audit log of uploads and deletions
// - Rate limiting
//
// Example usage:
//   go run main.go
//
// Configuration:
//   Environment variables (or a .env file): UPLOAD_DIR, MAX_FILE_SIZE_MB,
//   LOG_DIR, PORT, RATE_LIMIT_REQUESTS, RATE_LIMIT_DURATION
//
// API Documentation:
//   All endpoints are documented in the internal/api/handler.go file
package main
