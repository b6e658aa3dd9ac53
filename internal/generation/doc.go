// Package generation contains the core of the excuse email service: the
// deterministic prompt builder, the Generator boundary to LLM backends, and
// the response normalization cascade that recovers a subject/body pair from
// loosely structured model output.
package generation
