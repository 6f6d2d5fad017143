package atlassian

// GraphQL documents sent to the Atlassian gateway. Kept as raw constants so
// the request shape is reviewable in one place.

const notificationFeedQuery = `
query NotificationFeed($first: Int!, $readState: InfluentsNotificationReadState, $flat: Boolean) {
  notifications {
    notificationFeed(flat: $flat, first: $first, filter: { readStateFilter: $readState }) {
      nodes {
        groupId
        groupSize
        additionalActors {
          displayName
          avatarURL
        }
        headNotification {
          notificationId
          timestamp
          readState
          category
          content {
            type
            message
            url
            entity {
              title
              iconUrl
              url
            }
            path {
              title
              iconUrl
              url
            }
            actor {
              displayName
              avatarURL
            }
          }
          analyticsAttributes {
            key
            value
          }
        }
      }
    }
  }
}`

const notificationGroupQuery = `
query NotificationGroup($groupId: String!, $first: Int!) {
  notifications {
    notificationGroup(groupId: $groupId, first: $first) {
      nodes {
        headNotification {
          notificationId
        }
      }
    }
  }
}`

const markAsReadMutation = `
mutation MarkAsRead($notificationIDs: [String!]!) {
  notifications {
    markNotificationsByIds(ids: $notificationIDs, readState: read) {
      notificationIds
    }
  }
}`

const markAsUnreadMutation = `
mutation MarkAsUnread($notificationIDs: [String!]!) {
  notifications {
    markNotificationsByIds(ids: $notificationIDs, readState: unread) {
      notificationIds
    }
  }
}`

const tenantContextQuery = `
query TenantContext($hostNames: [String!]!) {
  tenantContexts(hostNames: $hostNames) {
    cloudId
  }
}`
