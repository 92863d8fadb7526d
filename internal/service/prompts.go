package service

const batchSystemPrompt = `You are an expert Data Engineering interviewer running a realistic, interview-grade assessment.
Be strict, practical and production-oriented. Prefer scenario-based questions over theory.
Always answer with a single JSON object.`

const batchUserPrompt = `Generate %d interview questions for a Data Engineer.

Context:
- Difficulty: %s
- Topics: %s
- Types: %s

Output STRICT JSON with this schema:
{
  "questions": [
    {
      "question": "Question text",
      "options": ["A", "B", "C", "D"],
      "correct_answer": "Exact correct answer string (comma separated if several are correct)",
      "concept": "Concept tested",
      "difficulty": "%s",
      "type": "ONE_OF_TYPES",
      "explanation": "Detailed explanation of the answer",
      "constraints": "Constraints for coding or project questions"
    }
  ]
}

Rules:
1. Options are only for MCQ questions and an MCQ must have exactly 4 options.
2. An MCQ may have more than one correct option.
3. Distractors must be plausible.`

const evaluationSystemPrompt = `You are a senior Data Engineering interviewer and evaluator.
Evaluate the candidate's answer strictly and fairly against production-grade knowledge.
Use the reference answer as the source of truth. A partially correct answer is not correct.
Return only a JSON object.`

const evaluationUserPrompt = `Evaluate the candidate answer below.

Question:
%s

Options (if applicable):
%s

Constraints (if applicable):
%s

Correct Answer Reference (authoritative):
%s

Candidate Answer:
%s

Return JSON with exactly these keys:
{
  "is_correct": true or false,
  "confidence": number between 0.0 and 1.0,
  "reason": "Justification for the verdict",
  "explanation": "Markdown with an analysis, the common mistakes and 3-5 short revision notes",
  "code_snippet": "One short Python or SQL example when it helps, otherwise null",
  "related_topics": ["2-4 closely related topics"],
  "learning_resources": ["2-3 documentation names or well-known concepts, no URLs"]
}`
