package kafka

// TopicPrefix namespaces every topic this service writes.
const TopicPrefix = "schedula"

// Topic returns "<prefix>.<domain>.<action>", e.g. schedula.review.created.
func Topic(domain, action string) string {
	return TopicPrefix + "." + domain + "." + action
}
