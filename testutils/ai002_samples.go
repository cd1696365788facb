package testutils

import secureai "github.com/secureai/secureai"

// SampleCodeAI002 exercises the sensitive-logging rule.
var SampleCodeAI002 = []CodeSample{
	// Positive: credential field concatenated into console output
	{`
function report(user) {
  console.log("user email: " + user.email);
}
`, 1, secureai.NewConfig()},

	// Positive: full prompt logged through a template literal
	{`
async function run(prompt) {
  logger.info(` + "`sending prompt: ${prompt}`" + `);
  return openai.chat.completions.create({ messages: [{ role: "user", content: prompt }] });
}
`, 1, secureai.NewConfig()},

	// Positive: model response object logged wholesale
	{`
async function run() {
  const response = await client.messages.create({ messages: [] });
  console.debug(response);
}
`, 1, secureai.NewConfig()},

	// Positive: request-derived token logged
	{`
function trace(req) {
  logger.warn("got token", req.headers.token);
}
`, 1, secureai.NewConfig()},

	// Negative: logger call without sensitive material
	{`
function done() {
  console.log("request finished");
}
`, 0, secureai.NewConfig()},

	// Negative: sensitive name passed to a non-logger sink
	{`
function persist(password) {
  vault.store(password);
}
`, 0, secureai.NewConfig()},
}
