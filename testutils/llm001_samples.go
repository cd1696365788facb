package testutils

import secureai "github.com/secureai/secureai"

// SampleCodeLLM001 exercises the SDK usage inventory rule.
var SampleCodeLLM001 = []CodeSample{
	// Positive: OpenAI chat completion
	{`
const out = await openai.chat.completions.create({ messages: [] });
`, 1, secureai.NewConfig()},

	// Positive: Anthropic messages API on an arbitrary client name
	{`
const out = await client.messages.create({ max_tokens: 100, messages: [] });
`, 1, secureai.NewConfig()},

	// Positive: Gemini content generation
	{`
const out = await model.generateContent("hello");
`, 1, secureai.NewConfig()},

	// Positive: two SDK calls in one file
	{`
async function both(a, b) {
  await openai.chat.completions.create({ messages: [] });
  await model.generateContent(b);
}
`, 2, secureai.NewConfig()},

	// Negative: plain HTTP call, not an SDK shape
	{`
const out = await fetch("https://example.com/api");
`, 0, secureai.NewConfig()},
}
