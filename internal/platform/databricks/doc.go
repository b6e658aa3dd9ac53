// Package databricks implements the generation interface against a
// Databricks model serving endpoint speaking the chat-completions wire
// format.
package databricks
