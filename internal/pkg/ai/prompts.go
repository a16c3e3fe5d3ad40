package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const organizationProfilePrompt = `あなたは愛媛県の企業紹介ページを作成する編集者です。
以下の資料から企業プロフィールを作成し、JSONオブジェクトのみを出力してください。Markdownは使わないでください。

出力形式:
{
  "name": "企業名",
  "industry": "業種",
  "description": "学生向けの企業紹介文 (200字程度)",
  "location": "所在地",
  "website": "URL",
  "employeeCount": 従業員数 (数値、不明なら null),
  "appeal": "学生へのアピールポイント"
}

不明な文字列項目は空文字、employeeCount は null にしてください。推測で情報を作らないでください。

資料:
%s`

const jobDescriptionPrompt = `あなたは地域企業の採用担当者を支援するライターです。
以下の情報から%sの募集文を作成し、JSONオブジェクトのみを出力してください。Markdownは使わないでください。

出力形式:
{
  "title": "募集タイトル",
  "description": "仕事内容の説明",
  "category": "カテゴリ",
  "rjpPositive": ["この仕事の良い面", "..."],
  "rjpNegative": ["正直に伝えるべき大変な面", "..."]
}

rjpPositive と rjpNegative はそれぞれ2〜4項目のリアリスティック・ジョブ・プレビューです。

タイトル: %s
企業: %s
メモ:
%s`

const recommendationPrompt = `あなたは学生のキャリア学習アドバイザーです。
学生が大切にしている価値観と、それぞれに対応する講座の組み合わせが与えられます。
各組み合わせについて、その価値観を持つ学生にその講座を勧める理由を日本語1〜2文で書いてください。

JSON配列のみを出力してください。Markdownは使わないでください。
出力形式: [{"value": "価値観", "courseId": "講座ID", "reason": "理由"}]

組み合わせ:
%s`

// OrganizationProfilePrompt builds the company profile drafting prompt
func OrganizationProfilePrompt(source string) string {
	return fmt.Sprintf(organizationProfilePrompt, strings.TrimSpace(source))
}

// JobDescriptionPrompt builds the posting drafting prompt. jobType is "job" or "quest".
func JobDescriptionPrompt(jobType, title, organization, notes string) string {
	kind := "求人"
	if jobType == "quest" {
		kind = "短期クエスト (お手伝い・体験型の仕事)"
	}
	if organization == "" {
		organization = "(未指定)"
	}
	return fmt.Sprintf(jobDescriptionPrompt, kind, title, organization, strings.TrimSpace(notes))
}

// RecommendationPair is one value/course combination to explain
type RecommendationPair struct {
	Value       string `json:"value"`
	CourseID    string `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	Description string `json:"courseDescription,omitempty"`
}

// RecommendationReason is one element of the model's answer
type RecommendationReason struct {
	Value    string `json:"value"`
	CourseID string `json:"courseId"`
	Reason   string `json:"reason"`
}

// RecommendationPrompt builds one batch prompt covering every pair
func RecommendationPrompt(pairs []RecommendationPair) string {
	body, _ := json.MarshalIndent(pairs, "", "  ")
	return fmt.Sprintf(recommendationPrompt, body)
}
