package prompt

const (
	contractPlaceholder = "{contract_text}"
	rulePlaceholder     = "{regulation_rule}"
)

const preamble = `[INST] You are a Compliance Audit Engine. Your ONLY job is to compare the Contract Clause against the Regulation Rule.

INPUT DATA:
- Contract Clause: "{contract_text}"
- Regulation Rule: "{regulation_rule}"

LOGIC STEPS:
1. Extract the number of days mentioned in the Contract Clause (e.g., 7, 30, 90).
2. Extract the minimum days required by the Regulation Rule (e.g., 30).
3. Compare: If Contract Days < Regulation Days -> NON-COMPLIANT (Risk 100).
4. Compare: If Contract Days >= Regulation Days -> COMPLIANT (Risk 0).
5. Exception: If no notice period is found in the contract -> NON-COMPLIANT (Risk 100).
`

const sentinelTemplate = preamble + `
OUTPUT INSTRUCTIONS:
- You must write a concise explanation.
- You MUST end the explanation with exactly this phrase: "Risk Score: [0 or 100] | Status: [Compliant/Non-Compliant]".

Example Output 1:
"The contract specifies 7 days, which is less than the mandatory 30 days. Risk Score: 100 | Status: Non-Compliant"

Example Output 2:
"The contract specifies 90 days, which meets the 30-day requirement. Risk Score: 0 | Status: Compliant"

GENERATE OUTPUT NOW:
[/INST]`

const jsonTemplate = preamble + `
OUTPUT INSTRUCTIONS:
- Respond with exactly one JSON object and nothing else.
- The object MUST have these keys: "status" ("Compliant" or "Non-Compliant"), "risk_score" (0 or 100) and "explanation" (a concise sentence).

Example Output 1:
{"status": "Non-Compliant", "risk_score": 100, "explanation": "The contract specifies 7 days, which is less than the mandatory 30 days."}

Example Output 2:
{"status": "Compliant", "risk_score": 0, "explanation": "The contract specifies 90 days, which meets the 30-day requirement."}

GENERATE OUTPUT NOW:
[/INST]`
