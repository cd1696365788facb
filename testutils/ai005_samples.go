package testutils

import secureai "github.com/secureai/secureai"

// SampleCodeAI005 exercises the hardcoded-API-key rule.
var SampleCodeAI005 = []CodeSample{
	// Positive: OpenAI-shaped project key in the client constructor
	{`
const client = new OpenAI({ apiKey: "sk-proj-9aF3kQ81LmZo4XcV7TbN2RsYw6JdPe0GqHuI5tKx" });
`, 1, secureai.NewConfig()},

	// Positive: Anthropic-shaped key assigned to a constant
	{`
const ANTHROPIC_KEY = "sk-ant-REDACTED";
`, 1, secureai.NewConfig()},

	// Positive: key-named variable holding a high-entropy literal
	{`
const apiKey = "Zx9Qm2Lr7Vt4Bn8Ks1Pd5Jf3Hg6Wc";
`, 1, secureai.NewConfig()},

	// Negative: key loaded from the environment
	{`
const apiKey = process.env.OPENAI_API_KEY;
`, 0, secureai.NewConfig()},

	// Negative: obvious placeholder, entropy too low
	{`
const apiKey = "your-api-key-goes-here";
`, 0, secureai.NewConfig()},

	// Negative: provider prefix but far too short to be a live key
	{`
const token = "sk-test";
`, 0, secureai.NewConfig()},
}
