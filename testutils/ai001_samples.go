package testutils

import secureai "github.com/secureai/secureai"

// SampleCodeAI001 exercises the prompt-injection-by-concatenation rule.
var SampleCodeAI001 = []CodeSample{
	// Positive: request-derived variable interpolated into a message template
	{`
async function handleChat(req, res) {
  const name = req.body.name;
  const result = await openai.chat.completions.create({
    model: "gpt-4o",
    messages: [{ role: "user", content: ` + "`Summarize the account of ${name}`" + ` }],
  });
  res.json(result);
}
`, 1, secureai.NewConfig()},

	// Positive: parameter concatenated into the message content
	{`
function ask(userInput) {
  return anthropic.messages.create({
    max_tokens: 100,
    messages: [{ role: "user", content: "Carry out this task: " + userInput }],
  });
}
`, 1, secureai.NewConfig()},

	// Positive: concatenated member access on the request object
	{`
function summarize(req, res) {
  return gemini.generateContent("Summarize: " + req.query.text);
}
`, 1, secureai.NewConfig()},

	// Positive: top-level prompt property instead of a messages array
	{`
async function complete(req, res) {
  const topic = req.body.topic;
  await openai.complete({ prompt: ` + "`Write about ${topic}`" + ` });
}
`, 1, secureai.NewConfig()},

	// Negative: constant prompt, nothing user controlled
	{`
async function handleChat(req, res) {
  const result = await openai.chat.completions.create({
    messages: [{ role: "user", content: "Tell me a joke" }],
  });
  res.json(result);
}
`, 0, secureai.NewConfig()},

	// Negative: template references a local constant, not tainted data
	{`
function describe(req, res) {
  const topic = "the weather";
  return openai.chat.completions.create({
    messages: [{ role: "user", content: ` + "`Tell me about ${topic}`" + ` }],
  });
}
`, 0, secureai.NewConfig()},

	// Negative: tainted data flows into a non-LLM call
	{`
function record(req, res) {
  const name = req.body.name;
  audit.log(` + "`lookup for ${name}`" + `);
}
`, 0, secureai.NewConfig()},
}
