package testutils

import secureai "github.com/secureai/secureai"

// SampleCodeAI004 exercises the bulk-sensitive-object rule.
var SampleCodeAI004 = []CodeSample{
	// Positive: whole user object serialized into the prompt
	{`
async function describe(user) {
  return openai.chat.completions.create({
    messages: [{ role: "user", content: JSON.stringify(user) }],
  });
}
`, 1, secureai.NewConfig()},

	// Positive: sensitive object passed directly as the prompt argument
	{`
function enrich(profile) {
  return gemini.generateContent(profile);
}
`, 1, secureai.NewConfig()},

	// Positive: session object interpolated into a template
	{`
function audit(session) {
  return anthropic.messages.create({
    messages: [{ role: "user", content: ` + "`Review this session: ${JSON.stringify(session)}`" + ` }],
  });
}
`, 1, secureai.NewConfig()},

	// Negative: only a scalar field is sent
	{`
async function describe(user) {
  return openai.chat.completions.create({
    messages: [{ role: "user", content: user.displayName }],
  });
}
`, 0, secureai.NewConfig()},

	// Negative: JSON.stringify outside any LLM call
	{`
function dump(payload) {
  return cache.set("last", JSON.stringify(payload));
}
`, 0, secureai.NewConfig()},
}
