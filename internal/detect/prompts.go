package detect

// clientDetectPrompt asks the model to pick a client from the known list.
// The model must answer with a bare name; anything not on the list is
// discarded by the caller.
const clientDetectPrompt = `Meeting title: '%s'%s
Known clients: %s

Which client is this meeting most likely about? Consider:
- Domain names often contain client name (e.g., michelin.com -> Michelin, veronesi.it -> Veronesi)
- Language hints in title (Italian words -> Italian clients, German words -> German clients)
- Company name mentions or abbreviations in title
- Context clues in the meeting title

Reply with ONLY the client name from the list, or 'Unknown' if not clear.
No explanation, just the name.`

// autofillCommentPrompt asks for a short realistic comment for a
// synthesized time entry.
const autofillCommentPrompt = `Generate a brief, professional time entry comment for:
- Category: %s
- Client: %s
- Week activities: %s

Reply with ONLY a short comment (5-15 words) describing typical work.
No quotes, no explanation.`
