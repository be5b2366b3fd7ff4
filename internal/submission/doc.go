// Package submission models quiz-result submissions sent by the quiz client.
//
// Submissions arrive as loosely typed JSON. Each field is kept as a Value that
// remembers whether it was present, how it renders as text, its numeric
// coercion and whether it is truthy, so that "absent", null, 0 and "" can be
// told apart when validating and formatting.
package submission
