package gemini

import "fmt"

func summarizationPrompt(title, channel, transcript string) string {
	return fmt.Sprintf(`You are an expert content analyst and summarizer. Your task is to create a comprehensive summary of a YouTube video based on its transcript.

VIDEO INFORMATION:
- Title: %s
- Channel: %s

TRANSCRIPT:
%s

Please create a detailed summary with the following structure:

1. EXECUTIVE SUMMARY (2-3 sentences):
   Provide a concise overview of the main topic and key takeaways.

2. KEY POINTS (5-8 bullet points):
   - Extract the most important concepts, facts, or insights
   - Focus on actionable information and valuable insights
   - Include specific details, numbers, or examples mentioned
   - Highlight any surprising or counterintuitive findings

3. DETAILED SUMMARY (3-4 paragraphs):
   - Provide a comprehensive breakdown of the content
   - Organize information logically with clear sections
   - Include context and background information when relevant
   - Mention any important quotes, statistics, or examples
   - Address the main arguments or points made in the video

GUIDELINES:
- Be objective and factual
- Maintain the original tone and context
- Include specific details and examples from the transcript
- Focus on the most valuable and informative content
- Avoid repetition between sections
- Use clear, professional language
- If the video is technical, explain concepts in accessible terms
- If the video is educational, emphasize learning outcomes
- If the video is entertainment, focus on the main themes and highlights

Please format your response as JSON with the following structure:
{
  "executive": "Executive summary here",
  "keyPoints": ["Point 1", "Point 2", "Point 3", ...],
  "detailedSummary": "Detailed summary paragraphs here"
}`, title, channel, transcript)
}

func tagsPrompt(title, channel, executive string) string {
	return fmt.Sprintf(`Based on the following video information, generate 5-8 relevant tags:

Title: %s
Channel: %s
Summary: %s

Generate tags that are:
- Relevant to the video content
- Specific and descriptive
- Useful for categorization
- Include both broad and specific terms

Return only the tags as a comma-separated list, no additional text.`, title, channel, executive)
}
