package analyze

import "fmt"

// promptInstructions is the fixed preamble sent with every analysis
// request. It pins the response format to three markdown sections and
// includes a worked example.
const promptInstructions = "You are an expert in Lean 4 and formal mathematics. Your task is to help a user by providing a detailed " +
	"comment for a proof obligation marked with `sorry`.\n\n" +
	"Your response must be a markdown-formatted comment with exactly three sections. " +
	"**Do not write the full proof.** Your goal is to guide the user.\n\n" +
	"1.  `### Statement Explanation`: Explain what the theorem/definition states in clear, simple terms. Describe the goal and the hypotheses.\n" +
	"2.  `### Context`: Explain how this statement relates to other definitions or theorems in the file, imported files, or any provided external references. For example, mention if it's a key lemma for a larger proof, if it generalizes another concept, or if it connects two different ideas.\n" +
	"3.  `### Proof Suggestion`: Provide a high-level, step-by-step suggestion for how to approach the proof. Mention relevant tactics (like `simp`, `rw`, `cases`, `induction`) and specific lemmas from the provided file content that might be useful. Do not write the full proof code.\n\n" +
	"---\n\n" +
	"### Example\n\n" +
	"**Full File Content:**\n" +
	"```lean\n" +
	"import Mathlib.Data.Nat.Prime\n\n" +
	"def is_even (n : ℕ) : Prop :=\n" +
	"  ∃ k, n = 2 * k\n\n" +
	"theorem even_plus_even (a b : ℕ) (ha : is_even a) (hb : is_even b) : is_even (a + b) := by\n" +
	"  sorry\n" +
	"```\n\n" +
	"**Declaration with `sorry`:**\n" +
	"```lean\n" +
	"theorem even_plus_even (a b : ℕ) (ha : is_even a) (hb : is_even b) : is_even (a + b) := by\n" +
	"  sorry\n" +
	"```\n\n" +
	"**Your Ideal Response:**\n" +
	"```markdown\n" +
	"### Statement Explanation\n" +
	"This theorem states that for any two natural numbers `a` and `b`, if both `a` and `b` are even, then their sum `a + b` is also even.\n\n" +
	"### Context\n" +
	"This is a fundamental property of even numbers and relies on the definition `is_even` provided in the same file. It's a basic building block for number theory proofs.\n\n" +
	"### Proof Suggestion\n" +
	"1.  Start by using the `unfold is_even` tactic to expand the definition of `is_even` in the hypotheses `ha` and `hb` and the goal.\n" +
	"2.  This will give you two witnesses, let's say `k_a` and `k_b`, such that `a = 2 * k_a` and `b = 2 * k_b`.\n" +
	"3.  Substitute these equations into the goal `is_even (a + b)`.\n" +
	"4.  The goal will become `∃ k, 2 * k_a + 2 * k_b = 2 * k`.\n" +
	"5.  Use the `ring` tactic or factor out the 2 to show that you can provide `k_a + k_b` as the witness for the existential quantifier.\n" +
	"```\n\n" +
	"---\n\n" +
	"### User Request\n\n"

// buildPrompt assembles the full analysis prompt for one obligation. The
// external-reference block is omitted when there is no reference
// content.
func buildPrompt(req Request) string {
	referenceSection := ""
	if req.ReferenceContext != "" {
		referenceSection = fmt.Sprintf("**External Reference Content:**\n```\n%s\n```\n\n", req.ReferenceContext)
	}

	return promptInstructions +
		fmt.Sprintf("**Full File Content:**\n```lean\n%s\n```\n\n", req.FileContent) +
		fmt.Sprintf("**Imported Files Content:**\n```lean\n%s\n```\n\n", req.ImportsContext) +
		referenceSection +
		fmt.Sprintf("**Declaration with `sorry`:**\n```lean\n%s\n```", req.Snippet)
}
