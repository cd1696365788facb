package testutils

import secureai "github.com/secureai/secureai"

// SampleCodeAI003 exercises the LLM-before-authentication rule.
var SampleCodeAI003 = []CodeSample{
	// Positive: model reached before the auth check
	{`
async function handler(req, res) {
  const out = await openai.chat.completions.create({ messages: [] });
  await requireAuth(req);
  res.json(out);
}
`, 1, secureai.NewConfig()},

	// Positive: handler never authenticates at all
	{`
async function handler(request, reply) {
  const out = await gemini.generateContent(request.body.q);
  reply.send(out);
}
`, 1, secureai.NewConfig()},

	// Positive: two model calls before the check, one after
	{`
async function handler(req, res) {
  await openai.chat.completions.create({ messages: [] });
  await anthropic.messages.create({ messages: [] });
  await isAuthenticated(req);
  await openai.chat.completions.create({ messages: [] });
}
`, 2, secureai.NewConfig()},

	// Negative: auth check precedes the model call
	{`
async function handler(req, res) {
  await requireAuth(req);
  const out = await openai.chat.completions.create({ messages: [] });
  res.json(out);
}
`, 0, secureai.NewConfig()},

	// Negative: not a request handler, no request-shaped parameter
	{`
async function summarize(text) {
  return openai.chat.completions.create({
    messages: [{ role: "user", content: text }],
  });
}
`, 0, secureai.NewConfig()},
}
