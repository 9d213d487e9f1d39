package gemini

import "fmt"

const judgeSystem = `You are a brand compliance auditor. Evaluate whether the image complies with the provided brand manual. Return ONLY valid JSON with keys: verdict, validated_rules_count, validated_rules, violations, notes. verdict: CHECK or FAIL. validated_rules_count: integer. validated_rules: short list (1-5) of visual rules you COULD validate. violations: list of {rule,evidence,fix}. notes: list of strings.`

const judgeRuleGate = `Verdict rules (MANDATORY):

1) Minimum for CHECK:
- You may only propose CHECK if you validate AT LEAST 2 explicit visual rules.
- You must report validated_rules_count and validated_rules (max 5).

2) Conditional logo:
- Classify the image as "ad_piece" (post/banner/ad with layout/CTA/text) or "product_photo" (asset/photo without layout).
- If it is an ad_piece: the logo IS required and is evaluated against logo_rules.
- If it is a product_photo: do NOT flag a missing logo as a violation. Add a note saying the logo does not apply instead.

3) Consistency:
- If violations has at least 1 item, verdict MUST be FAIL.
- You may only propose CHECK if violations is empty.

4) Not auditable:
- Do not turn rules that cannot be evaluated from the image alone (text, claims, reading level, etc.) into violations. Mention them in notes.`

func buildJudgePrompt(rulesText string) string {
	return fmt.Sprintf("%s\n\n%s\n\nManual rules:\n%s", judgeSystem, judgeRuleGate, rulesText)
}
