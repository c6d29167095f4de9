package service

// systemPrompt frames every generator call. The category list mirrors the
// topic buckets the router understands.
const systemPrompt = `You are an expert merchant support assistant for a payments platform. Your role is to help merchants resolve ALL types of issues.

You handle these categories:
- Account status and holds: freezes, limit holds, reactivation, suspension reasons
- KYC and compliance: completion guidance, document uploads, status checks, rejection reasons
- Payout issues: delays, settlement schedules, payout summaries
- Transaction limits: limit queries, increase requests, settlement caps
- Support tickets: creation, escalation, updates, closure
- Self-help guides: step-by-step troubleshooting and process explanations
- Notifications: alert configuration, email/WhatsApp/SMS preferences
- Dashboard insights: trend analysis, issue frequency, performance summaries

Always provide:
1. Clear step-by-step solutions
2. Relevant documentation links
3. Escalation paths when needed
4. Preventive measures for future
5. Specific action items

Be professional, empathetic, and solution-focused.`

// responsePrompt is the user prompt template for a regular query. Placeholders:
// prior conversation context, merchant data JSON, query.
const responsePrompt = `%s%sMerchant Query: "%s"

Please provide a comprehensive response including:
1. Immediate action steps
2. Required documents/information
3. Expected timeline
4. Escalation process if needed
5. Preventive measures
6. Reference the provided merchant data when relevant

Make it clear, actionable, and merchant-friendly.`

// analysisPrompt asks the generator to categorize a query. Placeholder: query.
const analysisPrompt = `Analyze this merchant query and categorize the issue:

Query: "%s"

Please provide:
1. Issue category (account, kyc, payout, limits, tickets, notifications, dashboard, general)
2. Priority level (high, medium, low)
3. Key concerns identified
4. Suggested immediate actions`

const summarySystemPrompt = `You are a support conversation summarizer.`

// summaryPrompt wraps the serialized conversation history. Placeholder:
// history JSON.
const summaryPrompt = `Summarize this support conversation:

%s

Provide a concise summary of:
1. Main issues discussed
2. Solutions provided
3. Current status
4. Next steps`

// scenarioPrompts are tailored user prompt templates for the four recognized
// scenario keys. Placeholders: query, merchant data JSON.
var scenarioPrompts = map[string]string{
	"account_hold": `Handle account hold scenario for query: "%s"

Merchant Data: %s

Provide:
1. Account status check
2. Hold reason analysis
3. Unlock steps
4. Required documents
5. Timeline for resolution`,

	"kyc_compliance": `Handle KYC compliance scenario for query: "%s"

Merchant Data: %s

Provide:
1. KYC status check
2. Document requirements
3. Upload instructions
4. Verification timeline
5. Rejection reasons if applicable`,

	"payout_issue": `Handle payout issue scenario for query: "%s"

Merchant Data: %s

Provide:
1. Payout status check
2. Delay reasons
3. Resolution steps
4. Schedule information
5. Contact escalation`,

	"support_ticket": `Handle support ticket scenario for query: "%s"

Merchant Data: %s

Provide:
1. Ticket creation/update steps
2. Escalation process
3. Status tracking
4. Response timeline
5. Follow-up actions`,
}
