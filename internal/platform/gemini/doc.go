// Package gemini implements the generation interface using Google's Gemini
// API. It is an alternative backend selected with llm.provider: gemini; the
// model's text output runs through the same normalization cascade as the
// default backend.
package gemini
